package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - 配置错误：INVALID_CONFIG（度量名不合法、半衰期非正、字段缺失等）
//   - 模型错误：EMPTY_MODEL（未 Fit 就调用 Recommend）
//   - 实体错误：UNKNOWN_ENTITY（查询引用了训练时未见过的 ID）
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "INVALID_CONFIG", "EMPTY_MODEL"）
	Message string // 错误消息
	Module  string // 模块名称（如 "sar", "store", "dataset"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
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
	// ErrorCodeInvalidConfig 表示配置参数不合法（configure/fit 阶段即失败，不重试）
	ErrorCodeInvalidConfig = "INVALID_CONFIG"
	// ErrorCodeEmptyModel 表示模型尚未 Fit（调用方编程错误）
	ErrorCodeEmptyModel = "EMPTY_MODEL"
	// ErrorCodeUnknownEntity 表示查询引用了训练集中不存在的用户/物品 ID
	ErrorCodeUnknownEntity = "UNKNOWN_ENTITY"
	// ErrorCodeNotFound 表示资源不存在
	ErrorCodeNotFound = "NOT_FOUND"
	// ErrorCodeNotSupported 表示操作不支持
	ErrorCodeNotSupported = "NOT_SUPPORTED"
)

// 模块名称常量
const (
	ModuleSAR     = "sar"     // 模型模块
	ModuleStore   = "store"   // 存储模块
	ModuleDataset = "dataset" // 数据集模块
	ModuleFilter  = "filter"  // 过滤模块
	ModuleConfig  = "config"  // 配置模块
)

// NewConfigurationError 创建配置错误（INVALID_CONFIG）。
func NewConfigurationError(module, message string) *DomainError {
	return NewDomainError(module, ErrorCodeInvalidConfig, message)
}

// NewEmptyModelError 创建空模型错误（EMPTY_MODEL）。
func NewEmptyModelError(module, message string) *DomainError {
	return NewDomainError(module, ErrorCodeEmptyModel, message)
}

// NewUnknownEntityError 创建未知实体错误（UNKNOWN_ENTITY）。
func NewUnknownEntityError(module, message string) *DomainError {
	return NewDomainError(module, ErrorCodeUnknownEntity, message)
}

// IsConfigurationError 检查错误是否为 INVALID_CONFIG
func IsConfigurationError(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidConfig
	}
	return false
}

// IsEmptyModelError 检查错误是否为 EMPTY_MODEL
func IsEmptyModelError(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeEmptyModel
	}
	return false
}

// IsUnknownEntityError 检查错误是否为 UNKNOWN_ENTITY
func IsUnknownEntityError(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnknownEntity
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}
