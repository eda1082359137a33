package utils

const (
	// TaskIdKey is the key for task ID used in routing parameters.
	TaskIdKey = "taskId"

	// TokenKey is the key for the reset token used in routing parameters.
	TokenKey = "token"

	// FilenameKey is the key for the uploaded filename used in routing parameters.
	FilenameKey = "filename"

	// OffsetParamKey is the key for offset used in pagination query parameters.
	OffsetParamKey = "offset"

	// LimitParamKey is the key for limit used in pagination query parameters.
	LimitParamKey = "limit"
)
