package cache

import (
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/ppiankov/kamerwatch/internal/model"
)

// Cache stores raw documents by key. Keys are slash-separated relative
// paths, so the disk layer can mirror them as a directory tree.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// MeetingKey returns the key of a transcript, e.g.
// sessions/56/meetings/plenary/56-12.html
func MeetingKey(kind model.MeetingKind, session, meeting int) string {
	return path.Join("sessions", strconv.Itoa(session), "meetings", string(kind),
		fmt.Sprintf("%d-%d.html", session, meeting))
}
