package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/mlmdash/internal/database"
	"github.com/jask/mlmdash/internal/database/repository"
	"github.com/jask/mlmdash/internal/logging"
)

// ValidationError reports a rejected contact-form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// InquiryInput is a contact-form submission before validation.
type InquiryInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// InquiryPage is one server-side page of inquiries.
type InquiryPage struct {
	Inquiries []repository.Inquiry
	Total     int
	Page      int
	PerPage   int
}

// InquiryService stores and lists contact-form submissions.
type InquiryService struct {
	Inquiries *repository.InquiryRepo
	Log       *zap.Logger
}

// Submit validates in and stores it under a fresh id.
func (s *InquiryService) Submit(ctx context.Context, in InquiryInput) (repository.Inquiry, error) {
	q := repository.Inquiry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Body:      strings.TrimSpace(in.Body),
		CreatedAt: database.Now(),
	}
	if err := validateInquiry(q); err != nil {
		return repository.Inquiry{}, err
	}
	if err := s.Inquiries.Insert(ctx, q); err != nil {
		return repository.Inquiry{}, fmt.Errorf("store inquiry: %w", err)
	}
	logging.OrNop(s.Log).Info("inquiry received", zap.String("id", q.ID), zap.String("subject", q.Subject))
	return q, nil
}

func validateInquiry(q repository.Inquiry) error {
	if q.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if q.Email == "" {
		return &ValidationError{Field: "email", Reason: "required"}
	}
	if addr, err := mail.ParseAddress(q.Email); err != nil || addr.Address != q.Email {
		return &ValidationError{Field: "email", Reason: "not a valid address"}
	}
	if q.Body == "" {
		return &ValidationError{Field: "body", Reason: "required"}
	}
	return nil
}

// Page lists inquiries newest first. Page is one-based and clamped.
func (s *InquiryService) Page(ctx context.Context, page, perPage int) (InquiryPage, error) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total, err := s.Inquiries.Count(ctx)
	if err != nil {
		return InquiryPage{}, fmt.Errorf("count inquiries: %w", err)
	}
	page = clampPage(page, total, perPage)
	list, err := s.Inquiries.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return InquiryPage{}, fmt.Errorf("list inquiries: %w", err)
	}
	return InquiryPage{Inquiries: list, Total: total, Page: page, PerPage: perPage}, nil
}
