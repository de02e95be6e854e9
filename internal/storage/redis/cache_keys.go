package redis

import (
	"fmt"
	"time"
)

const DefaultCategoryTTL = 10 * time.Minute

const categoryKeyPattern = "catalog:category:*"

func CategoryKey(id int64) string {
	return fmt.Sprintf("catalog:category:%d", id)
}

func categoryKeys(ids []int64) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = CategoryKey(id)
	}
	return keys
}
