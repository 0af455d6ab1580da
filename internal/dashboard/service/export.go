package service

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/festy23/hackathon_teams/internal/membership"
	participantModel "github.com/festy23/hackathon_teams/internal/participant/model"
	teamModel "github.com/festy23/hackathon_teams/internal/team/model"
)

const (
	participantsSheet = "Participants"
	teamsSheet        = "Teams"
)

// writeWorkbook renders participants and teams as a two-sheet XLSX file.
// Participant registration fields become one column each, sorted by key.
func writeWorkbook(participants []participantModel.Participant, teams []teamModel.TeamWithMembers) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", participantsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(teamsSheet); err != nil {
		return nil, err
	}

	if err := writeParticipants(f, participants, teams); err != nil {
		return nil, err
	}
	if err := writeTeams(f, teams); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func writeParticipants(f *excelize.File, participants []participantModel.Participant, teams []teamModel.TeamWithMembers) error {
	keys := fieldKeys(participants)

	header := []interface{}{"email", "name", "gender"}
	for _, k := range keys {
		header = append(header, k)
	}
	header = append(header, "team_name", "team_role", "has_team", "created_at")
	if err := setRow(f, participantsSheet, 1, header); err != nil {
		return err
	}

	roles := teamRoles(teams)
	for i := range participants {
		p := &participants[i]
		row := []interface{}{p.Email, p.Name, p.Gender}
		for _, k := range keys {
			row = append(row, cellValue(p.Fields[k]))
		}

		status, ok := roles[p.Email]
		if ok {
			row = append(row, status.TeamName, string(status.Role), "Yes")
		} else {
			row = append(row, "No Team", "No Role", "No")
		}
		row = append(row, p.CreatedAt.UTC().Format(time.RFC3339))

		if err := setRow(f, participantsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTeams(f *excelize.File, teams []teamModel.TeamWithMembers) error {
	header := []interface{}{
		"id", "name", "invite_code", "leader_email", "description", "skills_needed",
		"problem_statement", "is_public", "member_emails", "member_count", "created_at",
	}
	if err := setRow(f, teamsSheet, 1, header); err != nil {
		return err
	}

	for i, t := range teams {
		row := []interface{}{
			t.ID, t.Name, t.InviteCode, t.LeaderEmail, t.Description,
			strings.Join(t.SkillsNeeded, ", "), t.ProblemStatement, t.IsPublic,
			strings.Join(teamModel.Emails(t.Members), ", "), len(t.Members),
			t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := setRow(f, teamsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// fieldKeys returns every registration field key in use, sorted.
func fieldKeys(participants []participantModel.Participant) []string {
	seen := make(map[string]struct{})
	for _, p := range participants {
		for k := range p.Fields {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// teamRoles maps every member email to its team and role.
func teamRoles(teams []teamModel.TeamWithMembers) map[string]membership.Membership {
	roles := make(map[string]membership.Membership)
	for i := range teams {
		t := &teams[i]
		for _, m := range t.Members {
			roles[m.Email] = membership.Membership{
				HasTeam:  true,
				TeamID:   t.ID,
				TeamName: t.Name,
				Role:     membership.RoleIn(&t.Team, m.Email),
			}
		}
	}
	return roles
}

func cellValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
