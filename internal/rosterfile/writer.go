package rosterfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/classworks/lms-backend/internal/domain"
)

// EnrollmentHeader is the fixed column set of an enrollment export.
var EnrollmentHeader = []string{
	ColStudentID, ColStudentName, "student_email", "enrollment_date",
	"status", "progress_percentage", ColUniversity, ColExternalID,
}

// errorTrailer are the columns appended after the original row's columns in an
// error export.
var errorTrailer = []string{"error_type", "error_message", "row_number"}

// WriteEnrollments renders one CSV row per enrollment in the order given.
func WriteEnrollments(w io.Writer, enrollments []domain.Enrollment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EnrollmentHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range enrollments {
		record := []string{
			e.StudentID,
			e.StudentName,
			deref(e.StudentEmail),
			e.EnrolledAt.UTC().Format(time.RFC3339),
			string(e.Status),
			strconv.FormatFloat(e.Progress, 'f', -1, 64),
			deref(e.University),
			deref(e.ExternalID),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write enrollment %s: %w", e.StudentID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRowErrors renders one CSV row per row error. The header is the union
// of the original rows' columns (recognized roster columns first, then any
// extras in first-seen order) followed by error_type, error_message and
// row_number, so a corrected file can be cut straight from the export.
func WriteRowErrors(w io.Writer, errs []domain.RowError) error {
	columns := errorColumns(errs)

	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, columns...), errorTrailer...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, re := range errs {
		record := make([]string, 0, len(columns)+len(errorTrailer))
		for _, col := range columns {
			record = append(record, re.Fields[col])
		}
		record = append(record, string(re.Kind), re.Message, strconv.Itoa(re.RowNumber))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", re.RowNumber, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// errorColumns computes the union of field names across all row errors.
func errorColumns(errs []domain.RowError) []string {
	recognized := []string{ColStudentID, ColStudentName, ColEmail, ColUniversity, ColExternalID}

	seen := make(map[string]bool)
	var columns []string
	for _, col := range recognized {
		for _, re := range errs {
			if _, ok := re.Fields[col]; ok {
				columns = append(columns, col)
				seen[col] = true
				break
			}
		}
	}
	// Extras in deterministic order: walk rows in order, fields sorted per row.
	for _, re := range errs {
		for _, col := range sortedKeys(re.Fields) {
			if !seen[col] {
				columns = append(columns, col)
				seen[col] = true
			}
		}
	}
	return columns
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
