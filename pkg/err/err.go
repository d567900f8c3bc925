package errprocess

import (
	"errors"

	"workforce_chat_service/pkg/logger"
)

// Set logs errMsg and returns it as an error.
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// Wrap logs err with a context message and returns err unchanged, keeping
// errors.Is checks working at the boundary.
func Wrap(msg string, err error) error {
	logger.Log.Errorf(msg, err)
	return err
}
