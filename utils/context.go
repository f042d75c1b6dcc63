package utils

import (
	"context"
	"time"
)

// Upper bound for detached work such as the intake submission
const DefaultTimeout = 30 * time.Second

func NewContext() (ctx context.Context, cancel func()) {
	return context.WithTimeout(context.Background(), DefaultTimeout)
}
