package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"multasapi/internal/model"
	"multasapi/internal/repository"
)

const (
	DefaultOffenderLimit = 20
	MaxOffenderLimit     = 100
)

// OffenderPage is one page of the offenders registry.
type OffenderPage struct {
	Items []model.Offender `json:"data"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// OffenderService manages the registered offenders.
type OffenderService interface {
	List(ctx context.Context, search string, page, limit int) (*OffenderPage, error)
	Get(ctx context.Context, id string) (*model.Offender, error)
	Create(ctx context.Context, o *model.Offender) (*model.Offender, error)
}

type offenderService struct {
	repo repository.OffenderRepository
}

// NewOffenderService constructs an OffenderService.
func NewOffenderService(repo repository.OffenderRepository) OffenderService {
	return &offenderService{repo: repo}
}

func (s *offenderService) List(ctx context.Context, search string, page, limit int) (*OffenderPage, error) {
	if page < 1 {
		return nil, invalid("page", "deve ser um inteiro maior que 0")
	}
	if limit < 1 || limit > MaxOffenderLimit {
		return nil, invalid("limit", "deve estar entre 1 e %d", MaxOffenderLimit)
	}

	res, err := s.repo.List(ctx, strings.TrimSpace(search), repository.PageQuery{Limit: limit, Offset: (page - 1) * limit})
	if err != nil {
		return nil, err
	}
	return &OffenderPage{Items: res.Items, Total: res.Total, Page: page, Limit: limit}, nil
}

func (s *offenderService) Get(ctx context.Context, id string) (*model.Offender, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, ErrInvalidID
	}
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *offenderService) Create(ctx context.Context, o *model.Offender) (*model.Offender, error) {
	if o == nil {
		return nil, invalid("", "corpo da requisição é obrigatório")
	}
	in := *o
	in.Name = strings.TrimSpace(in.Name)
	in.CNPJ = strings.TrimSpace(in.CNPJ)
	in.CPF = strings.TrimSpace(in.CPF)
	if in.Name == "" {
		return nil, invalid("nome", "é obrigatório")
	}
	if in.Contact != nil && in.Contact.Email != "" && !strings.Contains(in.Contact.Email, "@") {
		return nil, invalid("contato.email", "e-mail inválido")
	}

	created, err := s.repo.Create(ctx, &in)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return created, nil
}
