package consts

const (
	EntityTypeChannel = "channel"
	EntityTypePost    = "post"
)

const (
	MetricTypeSubscribers = "subscribers"
	MetricTypeViews       = "views"
)

const (
	BotHandleSuffix  = "_bot"
	InviteLinkMarker = "joinchat"
)
