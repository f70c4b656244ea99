package enums

type ContentKind string

const (
	ContentText       ContentKind = "TEXT"
	ContentDocument   ContentKind = "DOCUMENT"
	ContentMembership ContentKind = "MEMBERSHIP"
	ContentOther      ContentKind = "OTHER"
)
