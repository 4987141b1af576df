package storerrros

import "errors"

var (
	ErrProductNoExist   = errors.New("product does not exists")
	ErrEmptyProductList = errors.New("empty product list")
)
