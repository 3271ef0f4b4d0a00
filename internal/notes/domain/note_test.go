package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteInput_Validate(t *testing.T) {
	valid := func() NoteInput {
		return NoteInput{
			FirstName:   "Ana",
			LastName:    "Souza",
			DateOfBirth: "1980-05-17",
			NoteType:    "soap",
			Transcript:  "Patient reports...",
			MedicalNote: "S: ...",
		}
	}

	tests := []struct {
		name    string
		mutate  func(n *NoteInput)
		wantErr bool
	}{
		{name: "Success_Valid", mutate: func(n *NoteInput) {}},
		{name: "Success_EmptyDateOfBirth", mutate: func(n *NoteInput) { n.DateOfBirth = "" }},
		{name: "Success_EmptyBodies", mutate: func(n *NoteInput) { n.Transcript, n.MedicalNote = "", "" }},
		{name: "Failure_BlankFirstName", mutate: func(n *NoteInput) { n.FirstName = "  " }, wantErr: true},
		{name: "Failure_EmptyLastName", mutate: func(n *NoteInput) { n.LastName = "" }, wantErr: true},
		{name: "Failure_BadDate", mutate: func(n *NoteInput) { n.DateOfBirth = "17/05/1980" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid()
			tt.mutate(&input)
			err := input.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoteInput_Apply(t *testing.T) {
	note := &Note{ID: "n1", FirstName: "Old"}
	input := NoteInput{FirstName: "Ana", LastName: "Souza", NoteType: "soap"}

	input.Apply(note)

	assert.Equal(t, "n1", note.ID)
	assert.Equal(t, "Ana", note.FirstName)
	assert.Equal(t, "Souza", note.LastName)
	assert.Equal(t, "soap", note.NoteType)
}
