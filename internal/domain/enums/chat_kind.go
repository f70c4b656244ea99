package enums

type ChatKind string

const (
	ChatPrivate ChatKind = "PRIVATE"
	ChatGroup   ChatKind = "GROUP"
	ChatOther   ChatKind = "OTHER"
)
