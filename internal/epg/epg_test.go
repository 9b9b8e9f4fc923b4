// SPDX-License-Identifier: MIT

package epg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(s string) int64 {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UnixMilli()
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEpg_RecentProgramme(t *testing.T) {
	guide := Epg{
		ChannelNames: []string{"CCTV1"},
		Programmes: []Programme{
			{StartAt: ms("2024-01-01T10:00:00Z"), EndAt: ms("2024-01-01T11:00:00Z"), Title: "morning"},
			{StartAt: ms("2024-01-01T11:00:00Z"), EndAt: ms("2024-01-01T12:00:00Z"), Title: "noon"},
			{StartAt: ms("2024-01-01T13:00:00Z"), EndAt: ms("2024-01-01T14:00:00Z"), Title: "afternoon"},
		},
	}

	t.Run("live with successor", func(t *testing.T) {
		r := guide.RecentProgramme(at("2024-01-01T10:30:00Z"))
		require.NotNil(t, r.Now)
		assert.Equal(t, "morning", r.Now.Title)
		require.NotNil(t, r.Next)
		assert.Equal(t, "noon", r.Next.Title)
	})

	t.Run("start is inclusive, end exclusive", func(t *testing.T) {
		r := guide.RecentProgramme(at("2024-01-01T11:00:00Z"))
		require.NotNil(t, r.Now)
		assert.Equal(t, "noon", r.Now.Title)
	})

	t.Run("schedule gap", func(t *testing.T) {
		r := guide.RecentProgramme(at("2024-01-01T12:30:00Z"))
		assert.Nil(t, r.Now)
		assert.Nil(t, r.Next)
	})

	t.Run("last programme has no successor", func(t *testing.T) {
		r := guide.RecentProgramme(at("2024-01-01T13:30:00Z"))
		require.NotNil(t, r.Now)
		assert.Equal(t, "afternoon", r.Now.Title)
		assert.Nil(t, r.Next)
	})

	t.Run("past the schedule", func(t *testing.T) {
		assert.Nil(t, guide.RecentProgramme(at("2024-01-01T20:00:00Z")).Now)
	})

	t.Run("empty schedule", func(t *testing.T) {
		assert.Nil(t, Epg{}.RecentProgramme(at("2024-01-01T10:30:00Z")).Now)
	})
}

func TestList_ProgrammeCount(t *testing.T) {
	l := List{
		{Programmes: []Programme{{}, {}}},
		{},
		{Programmes: []Programme{{}}},
	}
	assert.Equal(t, 3, l.ProgrammeCount())
}
