package token

import (
	"errors"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Payload token 內容
type Payload struct {
	ID        uuid.UUID  `json:"id"`
	SubjectID string     `json:"subject_id"`
	Role      model.Role `json:"role"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiredAt time.Time  `json:"expired_at"`
}

func NewPayload(subjectID string, role model.Role, duration time.Duration) (*Payload, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Payload{
		ID:        tokenID,
		SubjectID: subjectID,
		Role:      role,
		IssuedAt:  now,
		ExpiredAt: now.Add(duration),
	}, nil
}

func (payload *Payload) Valid() error {
	if time.Now().After(payload.ExpiredAt) {
		return ErrExpiredToken
	}
	if payload.SubjectID == "" || !payload.Role.IsValid() {
		return ErrInvalidToken
	}
	return nil
}
