package entity

import (
	"net/http"

	"github.com/Ro706/Project-MARS/internal/lib/validate"
)

// Answer is the result of one dispatched query. RewardScore is the
// semantic-alignment confidence in [0,1]; it is transient and never
// persisted on its own.
type Answer struct {
	Text        string  `json:"answer"`
	RewardScore float64 `json:"reward_score"`
}

type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

func (q *QueryRequest) Bind(_ *http.Request) error {
	return validate.Struct(q)
}
