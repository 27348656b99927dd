package rag

import (
	"context"

	"github.com/Ro706/Project-MARS/entity"
)

type Core interface {
	Query(ctx context.Context, query string) (*entity.Answer, error)
}
