package common

import (
	"fmt"
	"net/http"
)

func Error(status int, msg string) error {
	return &httpErrorMessage{
		Status: status,
		msg:    msg,
	}
}

type HttpErrorMessage interface {
	WriteHttpError(wr http.ResponseWriter) error
	Error() string
}

type httpErrorMessage struct {
	Status int
	msg    string
}

func (hem *httpErrorMessage) Error() string {
	return hem.msg
}

func (hem *httpErrorMessage) WriteHttpError(wr http.ResponseWriter) error {
	wr.Header().Set("Content-Type", "text/plain; charset=utf-8")
	wr.WriteHeader(hem.Status)
	_, err := fmt.Fprint(wr, hem.Error())
	return err
}
