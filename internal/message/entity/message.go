package entity

// Message is an immutable, append-only chat row. JSON field names are the
// wire contract the mobile client parses; Timestamp is unix milliseconds and
// doubles as the sync cursor.
type Message struct {
	ID          int64   `db:"id" json:"id"`
	SenderID    int64   `db:"sender_id" json:"sender_id"`
	ReceiverID  int64   `db:"receiver_id" json:"receiver_id"`
	TextContent *string `db:"text_content" json:"text_content"`
	MediaIDRef  *int64  `db:"media_id_ref" json:"media_id_ref"`
	Timestamp   int64   `db:"timestamp" json:"timestamp"`
}
