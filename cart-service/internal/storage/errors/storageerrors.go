package storerrros

import "errors"

var (
	ErrCartNotExist = errors.New("cart does not exists")
	ErrEmptyUserID  = errors.New("user id is empty")
)
