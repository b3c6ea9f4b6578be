package entity

// Payload is a stored binary blob. created_at is unix milliseconds so the
// retention sweep predicate matches what the service writes.
type Payload struct {
	ID        int64  `db:"id"`
	FileData  []byte `db:"file_data"`
	MimeType  string `db:"mime_type"`
	CreatedAt int64  `db:"created_at"`
}
