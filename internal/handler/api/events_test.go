// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/olegiv/skillfresh/internal/engine"
)

func TestCreateEvent(t *testing.T) {
	_, h, user := testSetup(t)

	skill := createSkillViaAPI(t, h, user.ID, `{"name":"Go"}`)

	event := logEventViaAPI(t, h, user.ID, fmt.Sprintf(
		`{"skill_id":%d,"kind":"practice","type":"project","date":"2026-08-20","notes":"shipped **v1**","duration_minutes":90}`,
		skill.ID))

	if event.Kind != "practice" || event.Type != "project" {
		t.Errorf("kind/type = %s/%s, want practice/project", event.Kind, event.Type)
	}
	if event.Date != "2026-08-20" {
		t.Errorf("Date = %q, want 2026-08-20", event.Date)
	}
	if event.DurationMinutes == nil || *event.DurationMinutes != 90 {
		t.Errorf("DurationMinutes = %v, want 90", event.DurationMinutes)
	}
	if event.NotesHTML == "" {
		t.Error("NotesHTML should render markdown notes")
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	_, h, user := testSetup(t)

	skill := createSkillViaAPI(t, h, user.ID, `{"name":"Go"}`)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"unknown skill", `{"skill_id":999,"kind":"practice","type":"exercise","date":"2026-08-20"}`, 422},
		{"bad date format", fmt.Sprintf(`{"skill_id":%d,"kind":"practice","type":"exercise","date":"20-08-2026"}`, skill.ID), 422},
		{"future date", fmt.Sprintf(`{"skill_id":%d,"kind":"practice","type":"exercise","date":"2026-09-10"}`, skill.ID), 422},
		{"bad kind", fmt.Sprintf(`{"skill_id":%d,"kind":"osmosis","type":"exercise","date":"2026-08-20"}`, skill.ID), 422},
		{"type from wrong kind", fmt.Sprintf(`{"skill_id":%d,"kind":"learning","type":"exercise","date":"2026-08-20"}`, skill.ID), 422},
		{"zero duration", fmt.Sprintf(`{"skill_id":%d,"kind":"practice","type":"exercise","date":"2026-08-20","duration_minutes":0}`, skill.ID), 422},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(newJSONRequest(t, http.MethodPost, "/api/v1/events", tt.body, nil), user.ID)
			w := executeHandler(t, h.CreateEvent, req)
			if w.Code != tt.code {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.code, w.Body.String())
			}
		})
	}
}

func TestCreateEvent_FromTemplate(t *testing.T) {
	_, h, user := testSetup(t)

	skill := createSkillViaAPI(t, h, user.ID, `{"name":"Go"}`)

	tplBody := `{"name":"Morning kata","kind":"practice","type":"exercise","default_duration_minutes":30,"default_notes":"daily kata"}`
	req := asUser(newJSONRequest(t, http.MethodPost, "/api/v1/templates", tplBody, nil), user.ID)
	w := executeHandler(t, h.CreateTemplate, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("CreateTemplate status = %d, body = %s", w.Code, w.Body.String())
	}
	tpl := unmarshalData[TemplateResponse](t, w)

	// Template fills in what the request leaves out.
	event := logEventViaAPI(t, h, user.ID, fmt.Sprintf(
		`{"skill_id":%d,"template_id":%d,"date":"2026-08-20"}`, skill.ID, tpl.ID))
	if event.Kind != "practice" || event.Type != "exercise" {
		t.Errorf("kind/type = %s/%s, want practice/exercise from template", event.Kind, event.Type)
	}
	if event.DurationMinutes == nil || *event.DurationMinutes != 30 {
		t.Errorf("DurationMinutes = %v, want 30 from template", event.DurationMinutes)
	}
	if event.Notes != "daily kata" {
		t.Errorf("Notes = %q, want template default", event.Notes)
	}

	// Explicit fields win over template defaults.
	event = logEventViaAPI(t, h, user.ID, fmt.Sprintf(
		`{"skill_id":%d,"template_id":%d,"date":"2026-08-21","duration_minutes":45,"notes":"longer session"}`,
		skill.ID, tpl.ID))
	if event.DurationMinutes == nil || *event.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %v, want explicit 45", event.DurationMinutes)
	}
	if event.Notes != "longer session" {
		t.Errorf("Notes = %q, want explicit notes", event.Notes)
	}
}

func TestUpdateEvent_NotesAndDurationOnly(t *testing.T) {
	_, h, user := testSetup(t)

	skill := createSkillViaAPI(t, h, user.ID, `{"name":"Go"}`)
	event := logEventViaAPI(t, h, user.ID, fmt.Sprintf(
		`{"skill_id":%d,"kind":"practice","type":"exercise","date":"2026-08-20"}`, skill.ID))

	params := map[string]string{"id": fmt.Sprint(event.ID)}

	// Notes and duration change; kind, type and date stay put even when the
	// request tries to move them.
	body := `{"notes":"refactored the parser","duration_minutes":45,"type":"work","date":"2026-08-15"}`
	req := asUser(newJSONRequest(t, http.MethodPut, "/api/v1/events/1", body, params), user.ID)
	w := executeHandler(t, h.UpdateEvent, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	got := unmarshalData[EventResponse](t, w)
	if got.Notes != "refactored the parser" {
		t.Errorf("Notes = %q, want updated notes", got.Notes)
	}
	if got.DurationMinutes == nil || *got.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %v, want 45", got.DurationMinutes)
	}
	if got.Kind != "practice" || got.Type != "exercise" || got.Date != "2026-08-20" {
		t.Errorf("kind/type/date = %s/%s/%s, want practice/exercise/2026-08-20 unchanged",
			got.Kind, got.Type, got.Date)
	}

	// A non-positive duration is still rejected.
	req = asUser(newJSONRequest(t, http.MethodPut, "/api/v1/events/1", `{"duration_minutes":0}`, params), user.ID)
	w = executeHandler(t, h.UpdateEvent, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("zero duration: status = %d, want 422", w.Code)
	}
}

func TestUpdateEvent_ClearDuration(t *testing.T) {
	_, h, user := testSetup(t)

	skill := createSkillViaAPI(t, h, user.ID, `{"name":"Go"}`)
	event := logEventViaAPI(t, h, user.ID, fmt.Sprintf(
		`{"skill_id":%d,"kind":"practice","type":"exercise","date":"2026-08-20","duration_minutes":60}`, skill.ID))

	params := map[string]string{"id": fmt.Sprint(event.ID)}
	req := asUser(newJSONRequest(t, http.MethodPut, "/api/v1/events/1", `{"clear_duration":true}`, params), user.ID)
	w := executeHandler(t, h.UpdateEvent, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := unmarshalData[EventResponse](t, w); got.DurationMinutes != nil {
		t.Errorf("DurationMinutes = %v, want nil after clear", *got.DurationMinutes)
	}
}

func TestDeleteEvent_ShiftsBaseline(t *testing.T) {
	_, h, user := testSetup(t)

	skill := createSkillViaAPI(t, h, user.ID, `{"name":"Go"}`)
	logEventViaAPI(t, h, user.ID, fmt.Sprintf(
		`{"skill_id":%d,"kind":"practice","type":"exercise","date":"2026-07-29"}`, skill.ID))
	recent := logEventViaAPI(t, h, user.ID, fmt.Sprintf(
		`{"skill_id":%d,"kind":"practice","type":"exercise","date":"2026-08-18"}`, skill.ID))

	params := map[string]string{"id": fmt.Sprint(recent.ID)}
	req := asUser(newJSONRequest(t, http.MethodDelete, "/api/v1/events/1", "", params), user.ID)
	w := executeHandler(t, h.DeleteEvent, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}

	// The older practice is the baseline now: 30 days at 0.02 is 40.
	skillParams := map[string]string{"id": fmt.Sprint(skill.ID)}
	req = asUser(newGetRequest(t, "/api/v1/skills/1", skillParams), user.ID)
	w = executeHandler(t, h.GetSkill, req)
	got := unmarshalData[SkillResponse](t, w)
	if got.Freshness == nil || *got.Freshness != 40 {
		t.Errorf("Freshness = %v, want 40 after deleting the latest practice", got.Freshness)
	}
	if got.Class == nil || *got.Class != engine.ClassAging {
		t.Errorf("Class = %v, want aging at exactly 40", got.Class)
	}
}

func TestSkillRecords(t *testing.T) {
	_, h, user := testSetup(t)

	skill := createSkillViaAPI(t, h, user.ID, `{"name":"Go"}`)
	logEventViaAPI(t, h, user.ID, fmt.Sprintf(
		`{"skill_id":%d,"kind":"practice","type":"exercise","date":"2026-08-01"}`, skill.ID))

	params := map[string]string{"id": fmt.Sprint(skill.ID)}
	req := asUser(newGetRequest(t, "/api/v1/skills/1/records", params), user.ID)
	w := executeHandler(t, h.SkillRecords, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	records := unmarshalData[engine.Records](t, w)
	if records.PeakFreshness == nil || *records.PeakFreshness != 100 {
		t.Errorf("PeakFreshness = %v, want 100", records.PeakFreshness)
	}
	// Fresh (above 70) for days 0 through 14 at the default rate.
	if records.LongestFreshStreakDays != 15 {
		t.Errorf("LongestFreshStreakDays = %d, want 15", records.LongestFreshStreakDays)
	}
}

func TestListSkillEvents_Ordered(t *testing.T) {
	_, h, user := testSetup(t)

	skill := createSkillViaAPI(t, h, user.ID, `{"name":"Go"}`)
	logEventViaAPI(t, h, user.ID, fmt.Sprintf(
		`{"skill_id":%d,"kind":"practice","type":"exercise","date":"2026-08-20"}`, skill.ID))
	logEventViaAPI(t, h, user.ID, fmt.Sprintf(
		`{"skill_id":%d,"kind":"learning","type":"reading","date":"2026-08-05"}`, skill.ID))

	params := map[string]string{"id": fmt.Sprint(skill.ID)}
	req := asUser(newGetRequest(t, "/api/v1/skills/1/events", params), user.ID)
	w := executeHandler(t, h.ListSkillEvents, req)
	events, meta := unmarshalList[EventResponse](t, w)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Date != "2026-08-05" || events[1].Date != "2026-08-20" {
		t.Errorf("events out of date order: %s, %s", events[0].Date, events[1].Date)
	}
	if meta == nil || meta.Total != 2 {
		t.Errorf("meta = %+v, want total 2", meta)
	}
}
