package app

// NoticeKind identifies a user-facing message.
type NoticeKind int

const (
	NoticeEmptyShare NoticeKind = iota + 1
	NoticeCopied
	NoticeCopyFallback
	NoticeImported
	NoticeImportCorrupt
	NoticeSaveFailed
)

// Notice is one message for the user.
type Notice struct {
	Kind NoticeKind
	Text string
	// Error is set for failure notices.
	Error bool
}

var noticeText = map[NoticeKind]string{
	NoticeEmptyShare:    "Cannot share an empty list. Add some items first!",
	NoticeCopied:        "Share link copied to clipboard!",
	NoticeCopyFallback:  "Share link displayed below. Copy it to share!",
	NoticeImported:      "Shared list loaded! You can edit, add, or delete items.",
	NoticeImportCorrupt: "Failed to load shared list. It may be corrupted.",
	NoticeSaveFailed:    "Could not save your list. Changes are kept for this session only.",
}

func newNotice(k NoticeKind) Notice {
	n := Notice{Kind: k, Text: noticeText[k]}
	switch k {
	case NoticeEmptyShare, NoticeImportCorrupt, NoticeSaveFailed:
		n.Error = true
	}
	return n
}

func (k NoticeKind) String() string {
	switch k {
	case NoticeEmptyShare:
		return "empty-share"
	case NoticeCopied:
		return "copied"
	case NoticeCopyFallback:
		return "copy-fallback"
	case NoticeImported:
		return "imported"
	case NoticeImportCorrupt:
		return "import-corrupt"
	case NoticeSaveFailed:
		return "save-failed"
	default:
		return "unknown"
	}
}
