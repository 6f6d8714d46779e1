// ABOUTME: MCP tool implementations for the training journal.
// ABOUTME: CRUD over trainings plus readiness logging and queries.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/trainlog/internal/models"
)

func (s *Server) registerTools() {
	// add_training
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_training",
		Description: "Log a training session (category Led/Kondice/Ucebna/Jine, duration in minutes)",
	}, s.handleAddTraining)

	// list_trainings
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_trainings",
		Description: "List trainings newest first, with cursor pagination",
	}, s.handleListTrainings)

	// delete_training
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_training",
		Description: "Delete a training by ID",
	}, s.handleDeleteTraining)

	// log_readiness
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_readiness",
		Description: "Record the daily readiness survey for a date (overwrites the day's entry)",
	}, s.handleLogReadiness)

	// get_readiness
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_readiness",
		Description: "Get the readiness entry for a date",
	}, s.handleGetReadiness)

	// readiness_range
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "readiness_range",
		Description: "List readiness entries between two dates, oldest first",
	}, s.handleReadinessRange)
}

// Tool input/output types

type addTrainingInput struct {
	Date        string `json:"date,omitempty" jsonschema:"Training date (YYYY-MM-DD), defaults to today"`
	Duration    int    `json:"duration" jsonschema:"Duration in minutes"`
	Description string `json:"description,omitempty" jsonschema:"Free-text notes"`
	Category    string `json:"category,omitempty" jsonschema:"Category: Led, Kondice, Ucebna, or Jine"`
	Group       string `json:"group,omitempty" jsonschema:"Conditioning group: Led, Silovy, Kardio, or Mobilita"`
	Subtype     string `json:"subtype,omitempty" jsonschema:"Free-form subtype (e.g. Individuál, Beh)"`
}

type trainingOutput struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type listTrainingsInput struct {
	Limit  int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
	Cursor string `json:"cursor,omitempty" jsonschema:"Cursor from a previous page"`
}

type deleteTrainingInput struct {
	ID string `json:"id" jsonschema:"Training ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type logReadinessInput struct {
	Date                  string   `json:"date,omitempty" jsonschema:"Survey date (YYYY-MM-DD), defaults to today"`
	TrainingLoadYesterday *float64 `json:"trainingLoadYesterday,omitempty" jsonschema:"0-10, higher is worse"`
	MuscleSoreness        *float64 `json:"muscleSoreness,omitempty" jsonschema:"0-10, higher is worse"`
	MuscleFatigue         *float64 `json:"muscleFatigue,omitempty" jsonschema:"0-10, higher is worse"`
	MentalStress          *float64 `json:"mentalStress,omitempty" jsonschema:"0-10, higher is worse"`
	Injury                *float64 `json:"injury,omitempty" jsonschema:"0-10, higher is worse"`
	Illness               *float64 `json:"illness,omitempty" jsonschema:"0-10, higher is worse"`
	SleepLastNight        *float64 `json:"sleepLastNight,omitempty" jsonschema:"0-10, higher is better"`
	NutritionQuality      *float64 `json:"nutritionQuality,omitempty" jsonschema:"0-10, higher is better"`
	Mood24h               *float64 `json:"mood24h,omitempty" jsonschema:"0-10, higher is better"`
	RecoveryEnergyToday   *float64 `json:"recoveryEnergyToday,omitempty" jsonschema:"0-10, higher is better"`
	Menstrual             *float64 `json:"menstrual,omitempty" jsonschema:"0-10, higher is worse"`
}

type readinessOutput struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Score   float64 `json:"score"`
	Message string  `json:"message"`
}

type getReadinessInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
}

type readinessRangeInput struct {
	From string `json:"from" jsonschema:"Start date (YYYY-MM-DD) inclusive"`
	To   string `json:"to" jsonschema:"End date (YYYY-MM-DD) inclusive"`
}

// Tool handlers

func (s *Server) handleAddTraining(ctx context.Context, req *mcp.CallToolRequest, input addTrainingInput) (*mcp.CallToolResult, trainingOutput, error) {
	rec, err := s.trainings.Add(models.TrainingDraft{
		Date:        input.Date,
		Duration:    input.Duration,
		Description: input.Description,
		Category:    models.Category(input.Category),
		Group:       models.Group(input.Group),
		Subtype:     input.Subtype,
	})
	if err != nil {
		return nil, trainingOutput{}, fmt.Errorf("add training: %w", err)
	}

	return nil, trainingOutput{
		ID:      rec.ID,
		Date:    rec.Date,
		Type:    string(rec.Type),
		Message: fmt.Sprintf("Logged %s training on %s (%d min, ID: %s)", rec.Type, rec.Date, rec.Duration, rec.ID[:8]),
	}, nil
}

func (s *Server) handleListTrainings(ctx context.Context, req *mcp.CallToolRequest, input listTrainingsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	page, err := s.trainings.ListPaginated(input.Limit, input.Cursor)
	if err != nil {
		return nil, nil, fmt.Errorf("list trainings: %w", err)
	}

	if len(page.Items) == 0 && !page.HasMore {
		return nil, map[string]interface{}{"message": "No trainings found."}, nil
	}

	return nil, map[string]interface{}{
		"items":      page.Items,
		"nextCursor": page.NextCursor,
		"hasMore":    page.HasMore,
	}, nil
}

func (s *Server) handleDeleteTraining(ctx context.Context, req *mcp.CallToolRequest, input deleteTrainingInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.trainings.Remove(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("delete training: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted training: %s", input.ID),
	}, nil
}

func (s *Server) handleLogReadiness(ctx context.Context, req *mcp.CallToolRequest, input logReadinessInput) (*mcp.CallToolResult, readinessOutput, error) {
	date := input.Date
	if date == "" {
		date = models.Today()
	}

	answers := models.DefaultAnswers()
	apply := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&answers.TrainingLoadYesterday, input.TrainingLoadYesterday)
	apply(&answers.MuscleSoreness, input.MuscleSoreness)
	apply(&answers.MuscleFatigue, input.MuscleFatigue)
	apply(&answers.MentalStress, input.MentalStress)
	apply(&answers.Injury, input.Injury)
	apply(&answers.Illness, input.Illness)
	apply(&answers.SleepLastNight, input.SleepLastNight)
	apply(&answers.NutritionQuality, input.NutritionQuality)
	apply(&answers.Mood24h, input.Mood24h)
	apply(&answers.RecoveryEnergyToday, input.RecoveryEnergyToday)
	apply(&answers.Menstrual, input.Menstrual)

	entry, err := s.readiness.UpsertForDate(date, answers)
	if err != nil {
		return nil, readinessOutput{}, fmt.Errorf("log readiness: %w", err)
	}

	return nil, readinessOutput{
		ID:      entry.ID,
		Date:    entry.Date,
		Score:   entry.Score,
		Message: fmt.Sprintf("Readiness for %s: %.1f/10", entry.Date, entry.Score),
	}, nil
}

func (s *Server) handleGetReadiness(ctx context.Context, req *mcp.CallToolRequest, input getReadinessInput) (*mcp.CallToolResult, any, error) {
	date := input.Date
	if date == "" {
		date = models.Today()
	}

	entry, err := s.readiness.GetByDate(date)
	if err != nil {
		return nil, nil, fmt.Errorf("get readiness: %w", err)
	}
	if entry == nil {
		return nil, map[string]interface{}{"message": fmt.Sprintf("No readiness entry for %s.", date)}, nil
	}

	return nil, entry, nil
}

func (s *Server) handleReadinessRange(ctx context.Context, req *mcp.CallToolRequest, input readinessRangeInput) (*mcp.CallToolResult, any, error) {
	entries, err := s.readiness.GetRangeInclusive(input.From, input.To)
	if err != nil {
		return nil, nil, fmt.Errorf("readiness range: %w", err)
	}

	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "No readiness entries in range."}, nil
	}

	return nil, entries, nil
}
