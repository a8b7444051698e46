package entity

import "errors"

// Domain errors for the learning engine aggregates.
var (
	ErrWordNotFound     = errors.New("word not found")
	ErrLearnerNotFound  = errors.New("learner not found")
	ErrProgressNotFound = errors.New("progress not found")
)
