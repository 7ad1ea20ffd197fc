package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/domain/fixture"
	"github.com/riskibarqy/footy-tipping/internal/domain/tip"
	"github.com/riskibarqy/footy-tipping/internal/platform/id"
)

const maxUserNameLength = 100

type ProcessTipsInput struct {
	UserName string
	Password string
	Tips     map[string]string
	Margin   string
	Round    string
}

type DecryptTipsInput struct {
	EncryptedString string
	Password        string
}

// DecryptTipsResult echoes the ciphertext and password. Decryption happens
// in the client.
type DecryptTipsResult struct {
	EncryptedString string
	Password        string
}

type SaveTipInput struct {
	UserName      string
	EncryptedData string
}

type TipService struct {
	repo tip.Repository
	ids  id.Generator
	now  func() time.Time
}

func NewTipService(repo tip.Repository, ids id.Generator, now func() time.Time) *TipService {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	if now == nil {
		now = time.Now
	}
	return &TipService{repo: repo, ids: ids, now: now}
}

// Process prepares a submission for client-side encryption. The password is
// required but never copied into the result.
func (s *TipService) Process(ctx context.Context, input ProcessTipsInput) (tip.Submission, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TipService.Process")
	defer span.End()

	userName := strings.TrimSpace(input.UserName)
	if userName == "" || strings.TrimSpace(input.Password) == "" {
		return tip.Submission{}, fmt.Errorf("%w: name and password are required", ErrInvalidInput)
	}

	tips := make(map[string]string, len(input.Tips))
	for fixtureID, teamName := range input.Tips {
		fixtureID = strings.TrimSpace(fixtureID)
		teamName = strings.TrimSpace(teamName)
		if fixtureID == "" || teamName == "" {
			continue
		}
		tips[fixtureID] = teamName
	}
	if len(tips) == 0 {
		return tip.Submission{}, fmt.Errorf("%w: at least one tip must be selected", ErrInvalidInput)
	}

	round := strings.TrimSpace(input.Round)
	if round == "" {
		round = fixture.CurrentRoundLabel
	}

	return tip.Submission{
		UserName:  userName,
		Tips:      tips,
		Margin:    strings.TrimSpace(input.Margin),
		Round:     round,
		CreatedAt: s.now().Format(fixture.DateLayout),
	}, nil
}

func (s *TipService) Decrypt(ctx context.Context, input DecryptTipsInput) (DecryptTipsResult, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TipService.Decrypt")
	defer span.End()

	encrypted := strings.TrimSpace(input.EncryptedString)
	password := strings.TrimSpace(input.Password)
	if encrypted == "" || password == "" {
		return DecryptTipsResult{}, fmt.Errorf("%w: both encrypted string and password are required", ErrInvalidInput)
	}
	return DecryptTipsResult{EncryptedString: encrypted, Password: password}, nil
}

func (s *TipService) Save(ctx context.Context, input SaveTipInput) (tip.Tip, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TipService.Save")
	defer span.End()

	userName := strings.TrimSpace(input.UserName)
	data := strings.TrimSpace(input.EncryptedData)
	if userName == "" || data == "" {
		return tip.Tip{}, fmt.Errorf("%w: user name and encrypted data are required", ErrInvalidInput)
	}
	if len(userName) > maxUserNameLength {
		return tip.Tip{}, fmt.Errorf("%w: user name must be at most %d characters", ErrInvalidInput, maxUserNameLength)
	}

	tipID, err := s.ids.NewID()
	if err != nil {
		return tip.Tip{}, fmt.Errorf("generate tip id: %w", err)
	}

	item := tip.Tip{
		ID:            tipID,
		UserName:      userName,
		EncryptedData: data,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return tip.Tip{}, fmt.Errorf("create tip: %w", err)
	}
	return item, nil
}

func (s *TipService) ListByUser(ctx context.Context, userName string) ([]tip.Tip, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TipService.ListByUser")
	defer span.End()

	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}

	items, err := s.repo.ListByUser(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("list tips by user: %w", err)
	}
	return items, nil
}
