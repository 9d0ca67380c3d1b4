package controllers

import (
	"errors"
	"net/http"

	"stellarsplit.app/payment-uri/common"
	"stellarsplit.app/payment-uri/log"
)

type ResponseMessage struct {
	Status int
	Data   interface{}
}

func MessageWithStatus(status int, message string) ResponseMessage {
	msg := ResponseMessage{
		Status: status,
		Data:   map[string]interface{}{"message": message},
	}

	return msg
}

func MessageWithData(status int, data interface{}) ResponseMessage {
	msg := ResponseMessage{
		Status: status,
		Data:   data,
	}

	return msg
}

// ViolationMessage reports err with the name of the URI rule it broke, if any.
func ViolationMessage(status int, err error) ResponseMessage {
	data := map[string]interface{}{"message": err.Error()}
	var v *common.InvariantViolation
	if errors.As(err, &v) {
		data["invariant"] = v.Invariant
		data["message"] = v.Err.Error()
	}
	return ResponseMessage{
		Status: status,
		Data:   data,
	}
}

func Respond(w http.ResponseWriter, data interface{}) {
	var err error

	switch res := data.(type) {
	case ResponseMessage:
		err = writeJSON(w, res.Status, res.Data)

	case common.HttpErrorMessage:
		err = res.WriteHttpError(w)

	default:
		err = writeJSON(w, http.StatusOK, data)
	}

	if err != nil {
		log.Errorf("Error encoding data for response: %v", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	body, err := common.MarshalToString(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}
