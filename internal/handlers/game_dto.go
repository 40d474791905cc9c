package handlers

import (
	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

type NewGameDTO struct {
	Difficulty string `schema:"difficulty"`
	// Seed selects a custom layout as "width:height:spawn_chance".
	Seed string `schema:"seed"`
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	X    int    `schema:"x,required"`
	Y    int    `schema:"y,required"`
}

type SessionDTO struct {
	SessionId     string     `json:"session_id"`
	Difficulty    string     `json:"difficulty,omitempty"`
	Status        string     `json:"status"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	Mines         int        `json:"mines"`
	Flags         int        `json:"flags"`
	SafeRemaining int        `json:"safe_remaining"`
	Grid          mines.Grid `json:"grid"`
	StartedAt     int64      `json:"started_at,omitempty"`
	EndedAt       *int64     `json:"ended_at,omitempty"`
	ElapsedMs     int64      `json:"elapsed_ms"`
}

func NewSessionDTO(id uuid.UUID, g *mines.Game) SessionDTO {
	dto := SessionDTO{
		SessionId: id.String(),
		Status:    g.Status.String(),
		Grid:      mines.Grid{},
	}
	b := g.Board()
	if b == nil {
		return dto
	}

	dto.Difficulty = string(g.Difficulty)
	dto.Width = b.Width
	dto.Height = b.Height
	dto.Mines = b.Mines()
	dto.Flags = b.Flags()
	dto.SafeRemaining = b.SafeRemaining()
	dto.Grid = b.PlayerGrid()
	dto.StartedAt = g.StartedAt.UnixMilli()
	dto.ElapsedMs = g.Elapsed().Milliseconds()
	if g.Status.Over() {
		e := g.EndedAt.UnixMilli()
		dto.EndedAt = &e
	}
	return dto
}

type CreatedDTO struct {
	Session SessionDTO `json:"session"`
	Token   string     `json:"token"`
}

type wsReply struct {
	SessionDTO
	Error string `json:"error,omitempty"`
}
