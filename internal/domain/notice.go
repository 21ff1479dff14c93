package domain

import "sync"

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a non-blocking message surfaced to whoever is driving a refresh.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Notifier receives notices from adapters and the aggregator.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// NoticeLog collects notices for a single refresh.
type NoticeLog struct {
	mu      sync.Mutex
	notices []Notice
}

func (l *NoticeLog) Notify(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = append(l.notices, n)
}

// Notices returns a copy of everything collected so far.
func (l *NoticeLog) Notices() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Notice(nil), l.notices...)
}

// Warn and Info are shorthands used by adapters. A nil notifier drops the notice.
func Warn(n Notifier, msg string) {
	if n != nil {
		n.Notify(Notice{Level: NoticeWarning, Message: msg})
	}
}

func Info(n Notifier, msg string) {
	if n != nil {
		n.Notify(Notice{Level: NoticeInfo, Message: msg})
	}
}
