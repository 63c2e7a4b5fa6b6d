package domain

import "math/big"

// Request is the tuple (requestId, profileIdBytes) sent by the consumer contract.
type Request struct {
	ID        *big.Int
	ProfileID []byte
}

type ResponseType uint64

// Tags defined by the consumer contract.
const (
	ResponseTypeResponse ResponseType = 0
	ResponseTypeError    ResponseType = 2
)

// Response is the tuple (responseType, requestId, payload) returned to the contract.
// Payload carries a stat code on success and an error code otherwise.
type Response struct {
	Type      ResponseType
	RequestID *big.Int
	Payload   uint64
}

// Stats mirrors the stats object of a Lens profile.
type Stats struct {
	TotalFollowers    uint64 `json:"totalFollowers"`
	TotalFollowing    uint64 `json:"totalFollowing"`
	TotalPosts        uint64 `json:"totalPosts"`
	TotalComments     uint64 `json:"totalComments"`
	TotalMirrors      uint64 `json:"totalMirrors"`
	TotalPublications uint64 `json:"totalPublications"`
	TotalCollects     uint64 `json:"totalCollects"`
}
