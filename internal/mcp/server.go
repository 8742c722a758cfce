package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/navanithpk/assessment-v5/internal/config"
	"github.com/navanithpk/assessment-v5/internal/descriptions"
	"github.com/navanithpk/assessment-v5/internal/exam"
	"github.com/navanithpk/assessment-v5/internal/formbind"
	"github.com/navanithpk/assessment-v5/internal/papers"
)

const shutdownTimeout = 5 * time.Second

// Server represents the MCP server instance
type Server struct {
	config       *config.Config
	paperService *papers.Service
	mcpServer    *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, paperService *papers.Service) (*Server, error) {
	if paperService == nil {
		return nil, fmt.Errorf("paperService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:       cfg,
		paperService: paperService,
		mcpServer:    mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(
		"exam_parse_filename",
		mcp.WithDescription(descriptions.ExamParseFilenameDescription),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Question paper filename, e.g. 9702_s23_qp_41.pdf"),
		),
	), s.handleParseFilename)

	s.mcpServer.AddTool(mcp.NewTool(
		"exam_catalog_directory",
		mcp.WithDescription(descriptions.ExamCatalogDirectoryDescription),
		mcp.WithString("directory",
			mcp.Description("Directory to catalog (uses the papers directory if empty)"),
		),
		mcp.WithString("subject_code",
			mcp.Description("Only papers for this subject code, e.g. 9702"),
		),
		mcp.WithNumber("year",
			mcp.Description("Only papers from this year, e.g. 2023"),
		),
		mcp.WithString("level",
			mcp.Description("Only papers of this level"),
			mcp.Enum(string(exam.ASLevel), string(exam.ALevel)),
		),
		mcp.WithString("paper_code",
			mcp.Description("Only papers with this two-digit paper code"),
		),
	), s.handleCatalogDirectory)

	s.mcpServer.AddTool(mcp.NewTool(
		"exam_validate_paper",
		mcp.WithDescription(descriptions.ExamValidatePaperDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the paper, absolute or relative to the papers directory"),
		),
	), s.handleValidatePaper)

	s.mcpServer.AddTool(mcp.NewTool(
		"exam_paper_stats",
		mcp.WithDescription(descriptions.ExamPaperStatsDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the paper, absolute or relative to the papers directory"),
		),
	), s.handlePaperStats)

	s.mcpServer.AddTool(mcp.NewTool(
		"exam_form_fill",
		mcp.WithDescription(descriptions.ExamFormFillDescription),
		mcp.WithString("form",
			mcp.Required(),
			mcp.Description("Path to the fillable upload form PDF"),
		),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Question paper filename to take metadata from"),
		),
		mcp.WithString("grade_field", mcp.Description("Grade choice field name (default: grade)")),
		mcp.WithString("subject_field", mcp.Description("Subject choice field name (default: subject)")),
		mcp.WithString("year_field", mcp.Description("Year text field name (default: year)")),
	), s.handleFormFill)

	s.mcpServer.AddTool(mcp.NewTool(
		"exam_server_info",
		mcp.WithDescription(descriptions.ExamServerInfoDescription),
	), s.handleServerInfo)
}

// Handler functions
func (s *Server) handleParseFilename(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := request.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	md := s.paperService.ParseFilename(filename)
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode metadata: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleCatalogDirectory(_ context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	req := papers.CatalogRequest{
		Directory:   stringArg(args, "directory"),
		SubjectCode: stringArg(args, "subject_code"),
		Level:       exam.Level(stringArg(args, "level")),
		PaperCode:   stringArg(args, "paper_code"),
	}
	if year, ok := args["year"].(float64); ok {
		req.Year = int(year)
	}

	result, err := s.paperService.Catalog(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.TotalCount == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No question papers found in directory: %s", result.Directory)), nil
	}

	return mcp.NewToolResultText(s.formatCatalogResult(result)), nil
}

func (s *Server) handleValidatePaper(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.paperService.ValidatePaper(papers.ValidatePaperRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.Valid {
		return mcp.NewToolResultText(fmt.Sprintf("Paper %s is valid and readable", result.Path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Paper validation failed for %s: %s", result.Path, result.Message)), nil
}

func (s *Server) handlePaperStats(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.paperService.PaperStats(papers.PaperStatsRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatPaperStatsResult(result)), nil
}

func (s *Server) handleFormFill(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	formPath, err := request.RequireString("form")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filename, err := request.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	names := formbind.DefaultFieldNames
	if v := stringArg(args, "grade_field"); v != "" {
		names.Grade = v
	}
	if v := stringArg(args, "subject_field"); v != "" {
		names.Subject = v
	}
	if v := stringArg(args, "year_field"); v != "" {
		names.Year = v
	}

	fields, err := s.paperService.FormFields(papers.FormFieldsRequest{Path: formPath})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	md := s.paperService.ParseFilename(filename)
	form := formbind.FromFormFields(fields.Fields, names)
	result, err := form.Apply(md)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatFormFillResult(filename, form, result)), nil
}

func (s *Server) handleServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := s.paperService.ServerInfo(s.config.ServerName, s.config.Version)
	return mcp.NewToolResultText(s.formatServerInfoResult(result)), nil
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Formatting methods
func (s *Server) formatCatalogResult(result *papers.CatalogResult) string {
	text := fmt.Sprintf("Found %d question paper(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.Unrecognized > 0 {
		text += fmt.Sprintf("Unrecognized filenames: %d\n", result.Unrecognized)
	}

	if len(result.BySubject) > 0 {
		subjects := make([]string, 0, len(result.BySubject))
		for subject := range result.BySubject {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)
		text += "By subject:"
		for _, subject := range subjects {
			text += fmt.Sprintf(" %s=%d", subject, result.BySubject[subject])
		}
		text += "\n"
	}

	if len(result.ByYear) > 0 {
		years := make([]int, 0, len(result.ByYear))
		for year := range result.ByYear {
			years = append(years, year)
		}
		sort.Ints(years)
		text += "By year:"
		for _, year := range years {
			text += fmt.Sprintf(" %d=%d", year, result.ByYear[year])
		}
		text += "\n"
	}

	if len(result.ByComponent) > 0 {
		components := make([]int, 0, len(result.ByComponent))
		for component := range result.ByComponent {
			components = append(components, component)
		}
		sort.Ints(components)
		text += "By paper:"
		for _, component := range components {
			text += fmt.Sprintf(" %d=%d", component, result.ByComponent[component])
		}
		text += "\n"
	}

	text += "\nPapers:\n"
	for i, entry := range result.Entries {
		text += fmt.Sprintf("%d. %s\n", i+1, entry.Name)
		text += fmt.Sprintf("   Path: %s\n", entry.Path)
		text += formatMetadata(entry.Metadata, "   ")
	}

	return text
}

func (s *Server) formatPaperStatsResult(result *papers.PaperStatsResult) string {
	text := "Question Paper Statistics\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Modified: %s\n", result.ModifiedDate)

	if result.Title != "" {
		text += fmt.Sprintf("Title: %s\n", result.Title)
	}
	if result.Author != "" {
		text += fmt.Sprintf("Author: %s\n", result.Author)
	}
	if result.Subject != "" {
		text += fmt.Sprintf("Document subject: %s\n", result.Subject)
	}
	if result.Producer != "" {
		text += fmt.Sprintf("Producer: %s\n", result.Producer)
	}
	if result.CreatedDate != "" {
		text += fmt.Sprintf("Created: %s\n", result.CreatedDate)
	}

	text += "\nFilename metadata:\n"
	text += formatMetadata(result.Metadata, "  ")

	return text
}

func (s *Server) formatFormFillResult(filename string, form *formbind.Form, result formbind.Result) string {
	text := fmt.Sprintf("Form fill for: %s\n", filename)

	describe := func(name string, present, applied bool, value, current string) string {
		switch {
		case !present:
			return fmt.Sprintf("%s: field not found in form\n", name)
		case applied:
			return fmt.Sprintf("%s: set to %q\n", name, value)
		case current != "":
			return fmt.Sprintf("%s: unchanged (%q)\n", name, current)
		default:
			return fmt.Sprintf("%s: unchanged\n", name)
		}
	}

	var grade, subject, year string
	if form.Grade != nil {
		grade = form.Grade.Value()
	}
	if form.Subject != nil {
		subject = form.Subject.Value()
	}
	if form.Year != nil {
		year = form.Year.Value()
	}

	text += describe("Grade", form.Grade != nil, result.GradeSelected, result.GradeValue, grade)
	text += describe("Subject", form.Subject != nil, result.SubjectSelected, result.SubjectValue, subject)
	text += describe("Year", form.Year != nil, result.YearSet, result.YearValue, year)

	return text
}

func (s *Server) formatServerInfoResult(result *papers.ServerInfoResult) string {
	text := fmt.Sprintf("%s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("Papers directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("Max file size: %d MB\n", result.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("Question papers found: %d\n", result.PaperCount)

	text += "\nSubjects:\n"
	for _, subject := range result.Subjects {
		text += fmt.Sprintf("  %s  %s\n", subject.Code, subject.DisplayName)
	}

	text += "\nPaper codes:\n"
	for _, paper := range result.PaperTypes {
		text += fmt.Sprintf("  %s  %-9s %s\n", paper.Code, paper.Level, paper.QuestionType)
	}

	return text
}

func formatMetadata(md exam.Metadata, indent string) string {
	var text string
	if v, ok := md.SubjectValue(); ok {
		text += fmt.Sprintf("%sSubject: %s (%s)\n", indent, v, *md.SubjectCode)
	} else if md.SubjectCode != nil {
		text += fmt.Sprintf("%sSubject code: %s\n", indent, *md.SubjectCode)
	}
	if v, ok := md.GradeValue(); ok {
		text += fmt.Sprintf("%sGrade: %s\n", indent, v)
	} else if v, ok := md.LevelValue(); ok {
		text += fmt.Sprintf("%sLevel: %s\n", indent, v)
	}
	if v, ok := md.YearValue(); ok {
		text += fmt.Sprintf("%sYear: %d\n", indent, v)
	}
	if v, ok := md.PaperCodeValue(); ok {
		text += fmt.Sprintf("%sPaper: %s", indent, v)
		if md.QuestionType != nil {
			text += fmt.Sprintf(" (%s)", *md.QuestionType)
		}
		text += "\n"
	}
	if text == "" {
		text = indent + "No metadata recognized\n"
	}
	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting exam metadata MCP server in stdio mode")
		log.Printf("Papers directory: %s", s.config.PapersDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over SSE until ctx is cancelled
func (s *Server) runServerMode(ctx context.Context) error {
	addr := s.config.Address()
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving MCP over SSE on %s", addr)
		errCh <- sse.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve sse: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sse.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down sse server: %w", err)
		}
		return nil
	}
}
