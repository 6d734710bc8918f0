package services

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	piiDeletedBy        = "AI_SERVER"
	piiDeletionMethod   = "anonymization"
	piiDeletionReason   = "policy_auto"
	piiDeletionStatus   = "success"
	piiValidationResult = "no remaining PII"
	piiLogMessage       = "파일 업로드 및 개인 정보 삭제를 성공했습니다"
)

var kst = time.FixedZone("KST", 9*60*60)

type piiPattern struct {
	label   string
	pattern *regexp.Regexp
}

// Redaction runs label by label in this order.
var piiPatterns = []piiPattern{
	{"email", regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)},
	{"phone", regexp.MustCompile(`01[016789]-?\d{3,4}-?\d{4}`)},
	{"ssn", regexp.MustCompile(`\d{6}-[1-4]\d{6}`)},
	{"url", regexp.MustCompile(`https?://[^\s]+`)},
}

// PIIResult is what a detector found in a text and the text with it masked.
type PIIResult struct {
	Matches        map[string][]string `json:"regex_result"`
	AnonymizedText string              `json:"anonymized_text"`
}

// DetectedFields returns the sorted labels that had at least one match.
func (r PIIResult) DetectedFields() []string {
	fields := make([]string, 0, len(r.Matches))
	for label := range r.Matches {
		fields = append(fields, label)
	}
	sort.Strings(fields)
	return fields
}

type PIIDetector interface {
	Detect(text string) PIIResult
}

type regexPIIDetector struct{}

func NewPIIDetector() PIIDetector {
	return &regexPIIDetector{}
}

// Detect implements PIIDetector. Matches are collected on the original text,
// then every distinct match is replaced with [REDACTED_<LABEL>].
func (d *regexPIIDetector) Detect(text string) PIIResult {
	matches := make(map[string][]string)
	for _, p := range piiPatterns {
		if found := p.pattern.FindAllString(text, -1); len(found) > 0 {
			matches[p.label] = found
		}
	}

	masked := text
	for _, p := range piiPatterns {
		seen := make(map[string]struct{})
		for _, m := range matches[p.label] {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			masked = strings.ReplaceAll(masked, m, "[REDACTED_"+strings.ToUpper(p.label)+"]")
		}
	}

	return PIIResult{Matches: matches, AnonymizedText: masked}
}

type PIILogPayload struct {
	Code    string     `json:"code"`
	Message string     `json:"message"`
	Data    PIILogData `json:"data"`
}

type PIILogData struct {
	DeletedAt         string   `json:"deleted_at"`
	DeletedBy         string   `json:"deleted_by"`
	UserID            string   `json:"user_id"`
	FileID            string   `json:"file_id"`
	DetectedPIIFields []string `json:"detected_pii_fields"`
	DeletedFields     []string `json:"deleted_fields"`
	DeletionMethod    string   `json:"deletion_method"`
	DeletionReason    string   `json:"deletion_reason"`
	DeletionStatus    string   `json:"deletion_status"`
	ValidationResult  string   `json:"validation_result"`
	OriginalFilename  string   `json:"original_filename"`
}

// NewPIILogPayload builds the deletion log recorded for an anonymized résumé.
func NewPIILogPayload(userID, fileID, originalFilename string, result PIIResult, now time.Time) PIILogPayload {
	fields := result.DetectedFields()

	return PIILogPayload{
		Code:    "200",
		Message: piiLogMessage,
		Data: PIILogData{
			DeletedAt:         now.In(kst).Format(time.RFC3339),
			DeletedBy:         piiDeletedBy,
			UserID:            userID,
			FileID:            fileID,
			DetectedPIIFields: fields,
			DeletedFields:     fields,
			DeletionMethod:    piiDeletionMethod,
			DeletionReason:    piiDeletionReason,
			DeletionStatus:    piiDeletionStatus,
			ValidationResult:  piiValidationResult,
			OriginalFilename:  originalFilename,
		},
	}
}

// PIILogKey is the object key a deletion log is stored under.
func PIILogKey(fileID string) string {
	return "pii-logs/" + fileID + ".json"
}
