package constants

const (
	CHANNEL_SIZE      = 100  // buffered size of broker and per-connection channels
	HISTORY_PAGE_SIZE = 20   // messages returned per older-history request
	NAME_MAX_LEN      = 32   // display name length limit enforced at the boundary
	CONTENT_MAX_LEN   = 4096 // text message body limit enforced at the boundary
)
