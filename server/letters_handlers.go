package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lettergen/database"
	"lettergen/importer"
	"lettergen/letters"
	"lettergen/render"
	apperrors "lettergen/server/errors"
)

// Имена, под которыми загруженные файлы хранятся в каталоге загрузок.
const (
	reportingFileName = "reporting.xlsx"
	registryFileName  = "sed.xlsx"
)

// UploadResponse ответ на загрузку файлов
type UploadResponse struct {
	Message       string `json:"message"`
	ReportingFile string `json:"reporting_file"`
	SedFile       string `json:"sed_file"`
}

// ProcessResponse ответ на обработку файлов
type ProcessResponse struct {
	Message        string                 `json:"message"`
	LettersCount   int                    `json:"letters_count"`
	FilesGenerated []string               `json:"files_generated"`
	LettersData    []interface{}          `json:"letters_data"`
	SessionID      int64                  `json:"session_id,omitempty"`
	Stats          map[string]interface{} `json:"stats,omitempty"`
}

// HandleUpload принимает два Excel-файла: отчетность и журнал СЭД.
func (s *Server) HandleUpload(c *gin.Context) {
	reportingFile, err := c.FormFile("reporting_file")
	if err != nil {
		SendJSONError(c, s.logger, http.StatusBadRequest,
			"Необходимо загрузить оба файла: отчетность (reporting_file) и СЭД (sed_file)")
		return
	}
	sedFile, err := c.FormFile("sed_file")
	if err != nil {
		SendJSONError(c, s.logger, http.StatusBadRequest,
			"Необходимо загрузить оба файла: отчетность (reporting_file) и СЭД (sed_file)")
		return
	}

	if !allowedExcelFile(reportingFile.Filename) || !allowedExcelFile(sedFile.Filename) {
		SendJSONError(c, s.logger, http.StatusBadRequest,
			"Разрешены только Excel файлы (.xlsx, .xls)")
		return
	}

	if err := c.SaveUploadedFile(reportingFile, filepath.Join(s.cfg.UploadsDir, reportingFileName)); err != nil {
		appErr := apperrors.NewInternalError("не удалось сохранить файл отчетности", err)
		SendJSONError(c, s.logger, appErr.StatusCode(), appErr.UserMessage())
		return
	}
	if err := c.SaveUploadedFile(sedFile, filepath.Join(s.cfg.UploadsDir, registryFileName)); err != nil {
		appErr := apperrors.NewInternalError("не удалось сохранить файл СЭД", err)
		SendJSONError(c, s.logger, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	s.logger.Info("Файлы загружены",
		"reporting", reportingFile.Filename,
		"sed", sedFile.Filename)

	SendJSONResponse(c, http.StatusOK, UploadResponse{
		Message:       "Файлы успешно загружены",
		ReportingFile: reportingFileName,
		SedFile:       registryFileName,
	})
}

// HandleProcess запускает обработку загруженных файлов и генерацию писем.
func (s *Server) HandleProcess(c *gin.Context) {
	reportingPath := filepath.Join(s.cfg.UploadsDir, reportingFileName)
	registryPath := filepath.Join(s.cfg.UploadsDir, registryFileName)

	if !fileExists(reportingPath) || !fileExists(registryPath) {
		SendJSONError(c, s.logger, http.StatusBadRequest,
			"Файлы не найдены. Загрузите файлы сначала.")
		return
	}

	reportingRows, err := importer.ParseReportingFile(reportingPath, s.logger)
	if err != nil {
		appErr := apperrors.NewValidationError("не удалось разобрать файл отчетности", err)
		s.logger.Error("Ошибка разбора файла отчетности", "error", err)
		SendJSONError(c, s.logger, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	registryRows, err := importer.ParseRegistryFile(registryPath, s.logger)
	if err != nil {
		appErr := apperrors.NewValidationError("не удалось разобрать файл СЭД", err)
		s.logger.Error("Ошибка разбора файла СЭД", "error", err)
		SendJSONError(c, s.logger, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	now := s.now()
	records := s.aggregator.Aggregate(reportingRows, registryRows, now)

	// Предыдущая выгрузка очищается целиком: каждый запуск пересчитывает
	// все письма заново
	if err := clearDirectory(s.cfg.GeneratedDir); err != nil {
		appErr := apperrors.NewInternalError("не удалось очистить каталог выгрузки", err)
		SendJSONError(c, s.logger, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	generator := render.NewGenerator(s.cfg.GeneratedDir, s.logger)
	generated := generator.GenerateAll(records, now)

	fileNames := make([]string, 0, len(generated)*3)
	for _, docs := range generated {
		if docs.IsEmpty() {
			continue
		}
		fileNames = append(fileNames, docs.LetterFile, docs.AppendixFile, docs.CSVFile)
	}

	sessionID := s.saveGenerationHistory(records, generated)

	lettersData := make([]interface{}, 0, len(records))
	for _, record := range records {
		lettersData = append(lettersData, record)
	}

	SendJSONResponse(c, http.StatusOK, ProcessResponse{
		Message:        fmt.Sprintf("Обработано и сгенерировано %d писем", len(records)),
		LettersCount:   len(records),
		FilesGenerated: fileNames,
		LettersData:    lettersData,
		SessionID:      sessionID,
	})
}

// HandleStatus возвращает состояние системы: загружены ли входные файлы
// и сколько документов сгенерировано.
func (s *Server) HandleStatus(c *gin.Context) {
	generatedCount := 0
	if entries, err := os.ReadDir(s.cfg.GeneratedDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				generatedCount++
			}
		}
	}

	status := gin.H{
		"reporting_file_uploaded":   fileExists(filepath.Join(s.cfg.UploadsDir, reportingFileName)),
		"sed_file_uploaded":         fileExists(filepath.Join(s.cfg.UploadsDir, registryFileName)),
		"generated_documents_count": generatedCount,
	}

	if s.db != nil {
		if stats, err := s.db.GetStats(); err == nil {
			status["history"] = stats
		}
	}

	SendJSONResponse(c, http.StatusOK, status)
}

// HandleHistory возвращает прошлые сессии генерации из базы истории.
func (s *Server) HandleHistory(c *gin.Context) {
	if s.db == nil {
		SendJSONError(c, s.logger, http.StatusServiceUnavailable, "История генерации недоступна")
		return
	}

	limit := 50
	if limitParam := c.Query("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	sessions, err := s.db.ListSessions(limit)
	if err != nil {
		appErr := apperrors.WrapError(err, "не удалось получить историю генерации")
		SendJSONError(c, s.logger, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// HandleDownload отдает один сгенерированный документ.
func (s *Server) HandleDownload(c *gin.Context) {
	filename := c.Param("filename")

	// Защита от выхода за пределы каталога выгрузки
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		SendJSONError(c, s.logger, http.StatusBadRequest, "Недопустимое имя файла")
		return
	}

	filePath := filepath.Join(s.cfg.GeneratedDir, filename)
	if !fileExists(filePath) {
		SendJSONError(c, s.logger, http.StatusNotFound, "Файл не найден")
		return
	}

	c.FileAttachment(filePath, filename)
}

// HandleDownloadAll отдает zip-архив со всеми сгенерированными документами.
func (s *Server) HandleDownloadAll(c *gin.Context) {
	tempDir, err := os.MkdirTemp("", "letters_archive_")
	if err != nil {
		appErr := apperrors.NewInternalError("не удалось создать временный каталог", err)
		SendJSONError(c, s.logger, appErr.StatusCode(), appErr.UserMessage())
		return
	}
	defer os.RemoveAll(tempDir)

	zipPath := filepath.Join(tempDir, "all_letters.zip")
	if err := render.ArchiveDirectory(s.cfg.GeneratedDir, zipPath); err != nil {
		SendJSONError(c, s.logger, http.StatusNotFound,
			"Нет сгенерированных файлов для скачивания")
		return
	}

	c.FileAttachment(zipPath, "all_letters.zip")
}

// saveGenerationHistory пишет сессию и письма в базу истории. Ошибка записи
// не срывает ответ: документы уже сгенерированы, история вторична.
func (s *Server) saveGenerationHistory(records []letters.LetterRecord, generated []render.GeneratedDocuments) int64 {
	if s.db == nil {
		return 0
	}

	success := 0
	for _, docs := range generated {
		if !docs.IsEmpty() {
			success++
		}
	}
	status := "completed"
	if success < len(records) {
		status = "partial"
	}

	sessionID, err := s.db.SaveSession(database.GenerationSession{
		StartedAt:     s.now(),
		ReportingFile: reportingFileName,
		RegistryFile:  registryFileName,
		LettersCount:  len(records),
		Status:        status,
	})
	if err != nil {
		s.logger.Error("Не удалось сохранить сессию генерации", "error", err)
		return 0
	}

	for i, record := range records {
		letter := database.GeneratedLetter{
			SessionID:    sessionID,
			OrderNumber:  record.OrderNumber,
			Contractor:   record.ContractorName,
			ShortName:    record.ShortName,
			TotalAmount:  record.TotalAmount.StringFixed(2),
			TotalPenalty: record.TotalPenalty.StringFixed(2),
			Positions:    record.TotalPositions,
			Category:     record.Category,
		}
		if i < len(generated) {
			letter.LetterFile = generated[i].LetterFile
			letter.AppendixFile = generated[i].AppendixFile
		}
		if err := s.db.SaveLetter(letter); err != nil {
			s.logger.Error("Не удалось сохранить запись о письме",
				"order_number", record.OrderNumber,
				"error", err)
		}
	}

	return sessionID
}

func allowedExcelFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".xlsx" || ext == ".xls"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// clearDirectory удаляет содержимое каталога, создавая его при необходимости.
func clearDirectory(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
