package tracing

// Span attribute keys.
const (
	AttrCommandID       = "command.id"
	AttrCommandType     = "command.type"
	AttrCommandPriority = "command.priority"
	AttrCommandSource   = "command.source"

	AttrCallerID  = "artist.caller"
	AttrArtworkID = "artwork.id"
	AttrNftID     = "nft.id"

	AttrErrorCode    = "error.code"
	AttrErrorMessage = "error.message"
)

// SpanPrefixCommand prefixes the span created for each processed command.
const SpanPrefixCommand = "command.process."

// Span event names.
const (
	EventCommandRefused = "command.refused"
	EventEventsEmitted  = "events.emitted"
)
