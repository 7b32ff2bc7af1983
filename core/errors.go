package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），可穿透 fmt.Errorf("%w") 包装链
//
// 错误分类（均为整批失败，不产生部分结果）：
//   - MALFORMED_INPUT：输入不是合法 JSON，或不是对象数组
//   - MISSING_FEATURE：记录缺少必需特征
//   - INVALID_CATEGORY：job_card_status 不在 {"open","closed"} 内
//   - SCORING_ERROR：模型打分失败或返回长度不一致
//   - MODEL_LOAD_ERROR：启动时模型文件无法加载
type DomainError struct {
	Code    string // 错误代码（如 "MISSING_FEATURE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "input", "feature", "model"）
	Cause   error  // 底层错误（可选）
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithCause 附加底层错误并返回自身，便于链式构造。
func (e *DomainError) WithCause(err error) *DomainError {
	e.Cause = err
	return e
}

// IsDomainError 检查错误链中是否包含 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中的第一个 DomainError，如果没有则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeMalformedInput  = "MALFORMED_INPUT"  // 输入格式错误
	ErrorCodeMissingFeature  = "MISSING_FEATURE"  // 缺少必需特征
	ErrorCodeInvalidCategory = "INVALID_CATEGORY" // 类别值无法识别
	ErrorCodeScoring         = "SCORING_ERROR"    // 打分失败
	ErrorCodeModelLoad       = "MODEL_LOAD_ERROR" // 模型加载失败
)

// 模块名称常量
const (
	ModuleInput   = "input"   // 输入解析
	ModuleFeature = "feature" // 特征准备
	ModuleModel   = "model"   // 模型加载与推理
	ModuleRank    = "rank"    // 排序与分桶
)

// NewMalformedInputError 创建 MALFORMED_INPUT 错误
func NewMalformedInputError(message string) *DomainError {
	return NewDomainError(ModuleInput, ErrorCodeMalformedInput, message)
}

// NewMissingFeatureError 创建 MISSING_FEATURE 错误
func NewMissingFeatureError(message string) *DomainError {
	return NewDomainError(ModuleFeature, ErrorCodeMissingFeature, message)
}

// NewInvalidCategoryError 创建 INVALID_CATEGORY 错误
func NewInvalidCategoryError(message string) *DomainError {
	return NewDomainError(ModuleFeature, ErrorCodeInvalidCategory, message)
}

// NewScoringError 创建 SCORING_ERROR 错误
func NewScoringError(message string) *DomainError {
	return NewDomainError(ModuleRank, ErrorCodeScoring, message)
}

// NewModelLoadError 创建 MODEL_LOAD_ERROR 错误
func NewModelLoadError(message string) *DomainError {
	return NewDomainError(ModuleModel, ErrorCodeModelLoad, message)
}

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsMalformedInput 检查错误是否为 MALFORMED_INPUT
func IsMalformedInput(err error) bool { return hasCode(err, ErrorCodeMalformedInput) }

// IsMissingFeature 检查错误是否为 MISSING_FEATURE
func IsMissingFeature(err error) bool { return hasCode(err, ErrorCodeMissingFeature) }

// IsInvalidCategory 检查错误是否为 INVALID_CATEGORY
func IsInvalidCategory(err error) bool { return hasCode(err, ErrorCodeInvalidCategory) }

// IsScoringError 检查错误是否为 SCORING_ERROR
func IsScoringError(err error) bool { return hasCode(err, ErrorCodeScoring) }

// IsModelLoadError 检查错误是否为 MODEL_LOAD_ERROR
func IsModelLoadError(err error) bool { return hasCode(err, ErrorCodeModelLoad) }
