package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// AccessKeyPrefix is carried on every invitation key so keys are easy to spot
// in logs and support tickets.
const AccessKeyPrefix = "KEY-"

// NewAccessKey generates a fresh invitation key string. KSUIDs draw their
// payload from crypto/rand, so the token is not guessable; the store's
// primary key on key_string is the final word on uniqueness.
func NewAccessKey() string {
	return AccessKeyPrefix + ksuid.New().String()
}

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewRequestID generates a snowflake ID string using a node ID from the
// environment variable SNOWFLAKE_NODE (default 1). The node is created once;
// snowflake's per-node sequence is what keeps same-millisecond IDs distinct.
func NewRequestID() string {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = n
			}
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			// out-of-range node configured; run with the default instead
			n, _ = snowflake.NewNode(1)
		}
		node = n
	})
	if node == nil {
		// unreachable unless snowflake's epoch config is broken; still
		// return something unique
		return ksuid.New().String()
	}
	return node.Generate().String()
}
