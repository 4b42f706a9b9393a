package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gitproof/gitproof/internal/models"
	"github.com/gitproof/gitproof/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	projectRepo  *repositories.ProjectRepository
	statsService *StatsService
}

func NewExportService(projectRepo *repositories.ProjectRepository, statsService *StatsService) *ExportService {
	return &ExportService{
		projectRepo:  projectRepo,
		statsService: statsService,
	}
}

// ExportUserReport builds the recruiter-oriented XLSX workbook: a summary
// sheet with the headline figures and insights, and a projects sheet with
// the visible repositories, best first.
func (s *ExportService) ExportUserReport(user *models.User) (*bytes.Buffer, error) {
	report, err := s.statsService.BuildReport(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	projects, err := s.projectRepo.GetVisibleByUserID(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := s.writeSummarySheet(f, user, report); err != nil {
		return nil, err
	}
	if err := s.writeProjectsSheet(f, projects); err != nil {
		return nil, err
	}

	// The default sheet excelize creates is replaced by Summary
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func (s *ExportService) writeSummarySheet(f *excelize.File, user *models.User, report *UserReport) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"GitHub Profile Report"},
		{"Username", user.Username},
		{"Name", user.Name},
		{"Generated", time.Now().Format("2006-01-02")},
		{},
		{"Impact Score", report.Stats.ImpactScore},
		{"Consistency", fmt.Sprintf("%d%%", report.Stats.Consistency)},
		{"Total Contributions", report.Stats.TotalContributions},
		{"Repositories", report.Stats.RepoCount},
		{"Archetype", report.Archetype.Title},
		{},
		{"Strengths"},
	}
	for _, insight := range report.Insights.Strengths {
		rows = append(rows, []interface{}{insight.Text, strings.ToUpper(string(insight.Strength))})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Growth Areas"})
	for _, insight := range report.Insights.GrowthAreas {
		rows = append(rows, []interface{}{insight.Text, strings.ToUpper(string(insight.Strength))})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func (s *ExportService) writeProjectsSheet(f *excelize.File, projects []*models.Project) error {
	const sheet = "Projects"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Name", "Impact Score", "Language", "Stars", "Forks", "Last Push", "Description", "URL"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, project := range projects {
		language := ""
		if project.Language != nil {
			language = *project.Language
		}
		description := ""
		if project.Description != nil {
			description = *project.Description
		}
		lastPush := ""
		if project.LastPushedAt != nil {
			lastPush = project.LastPushedAt.Format("2006-01-02")
		}

		row := []interface{}{
			project.Name,
			project.ImpactScore,
			language,
			project.Stars,
			project.Forks,
			lastPush,
			description,
			project.URL,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}
