package model

import "errors"

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrAuthorNotFound = errors.New("referenced author not found")
)
