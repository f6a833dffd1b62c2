package utils

import (
	"crypto/rand"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	Paginate(pageRaw, limitRaw string, maxLimit int) (limit, offset, page int)
}

type utils struct {
	mu      sync.Mutex
	entropy io.Reader
}

func New() IUtils {
	return &utils{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t), u.entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// Paginate turns raw page/limit query values into a bounded limit and offset.
func (u *utils) Paginate(pageRaw, limitRaw string, maxLimit int) (limit, offset, page int) {
	page, err := strconv.Atoi(pageRaw)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(limitRaw)
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return limit, (page - 1) * limit, page
}
