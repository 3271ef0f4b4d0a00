package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	accountDomain "github.com/allisson/clinicnotes/internal/account/domain"
	notesDomain "github.com/allisson/clinicnotes/internal/notes/domain"
)

func writeIdentity(writer io.Writer, format, message string, identity *accountDomain.Identity) error {
	if format == FormatJSON {
		return writeJSON(writer, identity)
	}
	_, err := fmt.Fprintf(writer, "%s\nUsername: %s\nUser ID:  %s\n", message, identity.Username, identity.UserID)
	return err
}

func writeNote(writer io.Writer, format string, note *notesDomain.Note) error {
	if format == FormatJSON {
		return writeJSON(writer, note)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ID:            %s\n", note.ID)
	fmt.Fprintf(&b, "Patient:       %s %s\n", note.FirstName, note.LastName)
	fmt.Fprintf(&b, "Date of birth: %s\n", note.DateOfBirth)
	fmt.Fprintf(&b, "Type:          %s\n", note.NoteType)
	fmt.Fprintf(&b, "Created at:    %s\n", note.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "\nTranscript:\n%s\n", note.Transcript)
	fmt.Fprintf(&b, "\nMedical note:\n%s\n", note.MedicalNote)
	_, err := io.WriteString(writer, b.String())
	return err
}

func writeNoteList(writer io.Writer, format string, list *notesDomain.NoteList) error {
	if format == FormatJSON {
		if list.Skipped == nil {
			list.Skipped = []string{}
		}
		if list.Notes == nil {
			list.Notes = []*notesDomain.Note{}
		}
		return writeJSON(writer, list)
	}

	var b strings.Builder
	if len(list.Notes) == 0 {
		b.WriteString("No notes found\n")
	}
	for _, note := range list.Notes {
		fmt.Fprintf(&b, "%s  %s  %s, %s",
			note.ID, note.CreatedAt.Format(time.RFC3339), note.LastName, note.FirstName)
		if note.NoteType != "" {
			fmt.Fprintf(&b, "  [%s]", note.NoteType)
		}
		b.WriteString("\n")
	}
	if len(list.Skipped) > 0 {
		fmt.Fprintf(&b, "Skipped %d unreadable record(s): %s\n",
			len(list.Skipped), strings.Join(list.Skipped, ", "))
	}
	_, err := io.WriteString(writer, b.String())
	return err
}
