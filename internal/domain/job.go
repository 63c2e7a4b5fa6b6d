package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Job is one oracle invocation delivered through a queue.
type Job struct {
	ID        string        `json:"id"`
	Request   hexutil.Bytes `json:"request"`
	Settings  string        `json:"settings"`
	CreatedAt time.Time     `json:"created_at"`
}

// Result carries the encoded response of a finished Job.
type Result struct {
	JobID      string        `json:"job_id"`
	Response   hexutil.Bytes `json:"response"`
	FinishedAt time.Time     `json:"finished_at"`
}
