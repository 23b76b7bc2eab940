package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sanwar/studentsvc/internal/app/models"
)

func TestFailureMarshalsNullData(t *testing.T) {
	body, err := json.Marshal(Failure[*models.Student]("Student with ID 1 not found"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(body)
	if !strings.Contains(got, `"success":false`) {
		t.Errorf("body = %s, want success:false", got)
	}
	if !strings.Contains(got, `"data":null`) {
		t.Errorf("body = %s, want data:null", got)
	}
	if !strings.Contains(got, `"message":"Student with ID 1 not found"`) {
		t.Errorf("body = %s, missing message", got)
	}
}

func TestSuccessMarshalsKeyedData(t *testing.T) {
	student := &models.Student{ID: 2, Name: "Anwar", Status: 0}
	body, err := json.Marshal(Success("Student update successfully", map[string]*models.Student{
		"student": student,
	}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Success bool                       `json:"success"`
		Message string                     `json:"message"`
		Data    map[string]*models.Student `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !decoded.Success {
		t.Error("success = false, want true")
	}
	if decoded.Data["student"] == nil || decoded.Data["student"].Name != "Anwar" {
		t.Errorf("data = %+v", decoded.Data)
	}
}
