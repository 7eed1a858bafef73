// Package types defines core data types and enums for the bilingual docx translator.
package types

// Config 应用配置
type Config struct {
	OpenAIAPIKey  string `json:"openai_api_key"`
	OpenAIBaseURL string `json:"openai_base_url"` // OpenAI 兼容 API 的 Base URL
	OpenAIModel   string `json:"openai_model"`

	// 文档翻译设置
	FlowchartTextboxThreshold int     `json:"flowchart_textbox_threshold"` // 表格被视为流程图所需的文字框数量
	DefaultFont               string  `json:"default_font"`                // 译文使用的西文字体
	DefaultFontSize           float64 `json:"default_font_size"`           // 译文字体大小（pt）
	HeaderFooterChineseSize   float64 `json:"header_footer_chinese_size"`  // 页首页尾中文字体大小（pt）
	HeaderFooterEnglishSize   float64 `json:"header_footer_english_size"`  // 页首页尾英文字体大小（pt）
	TableHeaderEnglishSize    float64 `json:"table_header_english_size"`   // 页首页尾表格英文字体大小（pt）
	TableEnglishFontRatio     float64 `json:"table_english_font_ratio"`    // 表格内英文字体缩小比例

	// 词典文件
	TermDictionaryPath   string `json:"term_dictionary_path"`   // 专业术语对照表（JSON）
	FixedTranslationPath string `json:"fixed_translation_path"` // 固定翻译对照表（JSON）
}

// TranslationResult 单个文档的翻译结果
type TranslationResult struct {
	InputPath          string `json:"input_path"`
	OutputPath         string `json:"output_path"`
	ParagraphsMerged   int    `json:"paragraphs_merged"`   // 合并区块数量
	ParagraphsInserted int    `json:"paragraphs_inserted"` // 插入的译文段落数量
	FlowchartsCloned   int    `json:"flowcharts_cloned"`   // 复制翻译的流程图表格数量
	BackendCalls       int    `json:"backend_calls"`       // 翻译后端调用次数
	BackendFailures    int    `json:"backend_failures"`    // 软失败次数（保留原文）
}

// ErrorCode 错误代码枚举
type ErrorCode string

const (
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrDocument     ErrorCode = "DOCUMENT_ERROR"
	ErrAPICall      ErrorCode = "API_CALL_ERROR"
	ErrNetwork      ErrorCode = "NETWORK_ERROR"
	ErrConfig       ErrorCode = "CONFIG_ERROR"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrTranslation  ErrorCode = "TRANSLATION_ERROR"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface for AppError
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError with the given code, message, and optional cause
func NewAppError(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewAppErrorWithDetails creates a new AppError with details
func NewAppErrorWithDetails(code ErrorCode, message, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}
