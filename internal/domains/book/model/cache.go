package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const BookCacheTTL = 10 * time.Minute

func BookCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("book:detail:%s", id)
}
