package model

import "errors"

var (
	ErrAnalysisNotFound     = errors.New("contract analysis not found")
	ErrAnalysisNotCompleted = errors.New("contract analysis not completed")
)
