// FILE: internal/service/review_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"legal-agent-be/internal/dto"
	"legal-agent-be/internal/entity"
	"legal-agent-be/internal/pkg/logger"
	"legal-agent-be/internal/pkg/mailer"
	"legal-agent-be/pkg/calendar"
	"legal-agent-be/pkg/companyname"
	"legal-agent-be/pkg/extractor"
	"legal-agent-be/pkg/llm"
	"legal-agent-be/pkg/pipeline"
)

type IReviewService interface {
	ProcessUpload(ctx context.Context, req *dto.UploadRequest) (*dto.UploadResult, error)
}

type reviewService struct {
	provider     llm.LLMProvider
	searchTool   pipeline.Tool
	emailService mailer.IEmailService
	calendarAPI  calendar.API // nil when the calendar token is absent
	guard        *pipeline.Guard
	artifactRoot string
	logger       logger.ILogger
}

func NewReviewService(
	provider llm.LLMProvider,
	searchTool pipeline.Tool,
	emailService mailer.IEmailService,
	calendarAPI calendar.API,
	guard *pipeline.Guard,
	artifactRoot string,
	log logger.ILogger,
) IReviewService {
	return &reviewService{
		provider:     provider,
		searchTool:   searchTool,
		emailService: emailService,
		calendarAPI:  calendarAPI,
		guard:        guard,
		artifactRoot: artifactRoot,
		logger:       log,
	}
}

// ProcessUpload runs the full review flow for one uploaded contract:
// extract text, guess the company, run the mode's crew under the guard,
// email the summary, and (creator mode) sync deliverables to the calendar.
func (s *reviewService) ProcessUpload(ctx context.Context, req *dto.UploadRequest) (*dto.UploadResult, error) {
	contractText, err := extractor.Extract(req.FilePath, req.FileName)
	if err != nil {
		return nil, fmt.Errorf("extract document text: %w", err)
	}

	company := companyname.Extract(contractText)
	subject := fmt.Sprintf("Contract Summary Report %s", time.Now().Format("2006-01-02"))
	if company != "" {
		subject = fmt.Sprintf("%s - %s", subject, company)
	}

	// Each run gets its own artifact directory so concurrent uploads
	// cannot race on the output files.
	runID := uuid.NewString()
	artifactDir := filepath.Join(s.artifactRoot, runID)

	mode := entity.Mode(req.Mode)
	crew := BuildCrew(mode, s.provider, s.searchTool, artifactDir)

	inputs := map[string]string{
		"contract_text": contractText,
		"user_email":    req.UserEmail,
		"subject_line":  subject,
	}

	s.logger.Info("review", "starting pipeline run", map[string]interface{}{
		"run_id":  runID,
		"mode":    req.Mode,
		"company": company,
	})

	result, err := s.guard.Run(ctx, func(runCtx context.Context) (*pipeline.RunResult, error) {
		return crew.Kickoff(runCtx, inputs)
	})
	if err != nil {
		var timeoutErr *pipeline.TimeoutError
		if errors.As(err, &timeoutErr) {
			s.logger.Error("review", "pipeline run timed out", map[string]interface{}{"run_id": runID})
		} else {
			s.logger.Error("review", "pipeline run failed", map[string]interface{}{"run_id": runID, "error": err.Error()})
		}
		return nil, err
	}

	summaryPath, ok := result.Artifacts[SummaryArtifact]
	if !ok {
		return nil, fmt.Errorf("pipeline produced no summary artifact")
	}

	if err := s.emailService.SendSummaryFile(req.UserEmail, subject, summaryPath); err != nil {
		return nil, fmt.Errorf("deliver summary email: %w", err)
	}

	message := fmt.Sprintf("Contract processed! Check your email (%s).", req.UserEmail)

	if mode == entity.ModeCreator {
		message += " " + s.syncDeliverables(ctx, artifactDir, req.UserEmail, runID)
	}

	return &dto.UploadResult{
		RunID:       runID,
		CompanyName: company,
		Message:     message,
	}, nil
}

// syncDeliverables is best-effort: any problem here degrades to a note in
// the response message instead of failing a run whose email already went out.
func (s *reviewService) syncDeliverables(ctx context.Context, artifactDir, userEmail, runID string) string {
	if s.calendarAPI == nil {
		return "Calendar sync not configured."
	}

	data, err := os.ReadFile(filepath.Join(artifactDir, DeliverablesArtifact))
	if err != nil {
		s.logger.Warn("review", "no deliverables artifact", map[string]interface{}{"run_id": runID, "error": err.Error()})
		return "Calendar sync skipped: no deliverables artifact."
	}

	var deliverables []calendar.Deliverable
	if err := json.Unmarshal(data, &deliverables); err != nil {
		s.logger.Warn("review", "unreadable deliverables artifact", map[string]interface{}{"run_id": runID, "error": err.Error()})
		return "Calendar sync skipped: unreadable deliverables artifact."
	}

	for i := range deliverables {
		if deliverables[i].UserEmail == "" {
			deliverables[i].UserEmail = userEmail
		}
	}

	summary := calendar.NewSynchronizer(s.calendarAPI, s.logger).Sync(ctx, deliverables)
	return summary.Line()
}
