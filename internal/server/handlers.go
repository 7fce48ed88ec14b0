package server

import (
	"ferry/internal/model"
	"ferry/internal/relocate"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

type relocateRequest struct {
	Src   string `json:"src"`
	Dst   string `json:"dst"`
	Into  bool   `json:"into"`
	Move  bool   `json:"move"`
	Force *bool  `json:"force"`
}

func (r relocateRequest) options() []relocate.Option {
	var opts []relocate.Option
	if r.Into {
		opts = append(opts, relocate.Into())
	}
	if r.Move {
		opts = append(opts, relocate.Moving())
	}
	if r.Force != nil {
		opts = append(opts, relocate.WithForce(*r.Force))
	}
	return opts
}

func bindRelocate(c echo.Context) (relocateRequest, bool) {
	var req relocateRequest
	if err := c.Bind(&req); err != nil || req.Src == "" || req.Dst == "" {
		return req, false
	}
	return req, true
}

func (s *Server) handleMerge(c echo.Context) error {
	req, ok := bindRelocate(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "src and dst required"})
	}

	res, err := s.engine.Merge(req.Src, req.Dst, req.options()...)
	return s.reply(c, model.OpMerge, req.Src, req.Dst, res, err)
}

func (s *Server) handleClone(c echo.Context) error {
	req, ok := bindRelocate(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "src and dst required"})
	}

	res, err := s.engine.Clone(req.Src, req.Dst, req.options()...)
	return s.reply(c, model.OpClone, req.Src, req.Dst, res, err)
}

func (s *Server) handleMove(c echo.Context) error {
	req, ok := bindRelocate(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "src and dst required"})
	}

	res, err := s.engine.Move(req.Src, req.Dst, req.options()...)
	return s.reply(c, model.OpMove, req.Src, req.Dst, res, err)
}

type pathsRequest struct {
	Paths []string `json:"paths"`
}

func (s *Server) handleDelete(c echo.Context) error {
	var req pathsRequest
	if err := c.Bind(&req); err != nil || len(req.Paths) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "paths required"})
	}

	res := s.engine.Delete(req.Paths...)
	return s.reply(c, model.OpDelete, strings.Join(req.Paths, ","), "", res, nil)
}

func (s *Server) handleListMarks(c echo.Context) error {
	marks, err := s.board.Marks()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, marks)
}

type markRequest struct {
	Kind   model.MarkKind `json:"kind"`
	Paths  []string       `json:"paths"`
	Append bool           `json:"append"`
}

func (s *Server) handleMark(c echo.Context) error {
	var req markRequest
	if err := c.Bind(&req); err != nil || len(req.Paths) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "paths required"})
	}

	var err error
	switch model.MarkKind(strings.ToUpper(string(req.Kind))) {
	case model.MarkCut:
		if req.Append {
			err = s.board.AppendCut(req.Paths...)
		} else {
			err = s.board.Cut(req.Paths...)
		}
	case model.MarkCopy:
		if req.Append {
			err = s.board.AppendCopy(req.Paths...)
		} else {
			err = s.board.Copy(req.Paths...)
		}
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "kind must be cut or copy"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return s.handleListMarks(c)
}

func (s *Server) handleUnmark(c echo.Context) error {
	if err := s.board.Unmark(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

type pasteRequest struct {
	Dst   string `json:"dst"`
	Root  string `json:"root"`
	Force *bool  `json:"force"`
}

func (s *Server) handlePaste(c echo.Context) error {
	var req pasteRequest
	if err := c.Bind(&req); err != nil || req.Dst == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "dst required"})
	}

	var opts []relocate.Option
	if req.Force != nil {
		opts = append(opts, relocate.WithForce(*req.Force))
	}

	res, err := s.board.Paste(req.Dst, req.Root, opts...)
	return s.reply(c, model.OpPaste, req.Root, req.Dst, res, err)
}

func (s *Server) handleListInboxes(c echo.Context) error {
	return c.JSON(http.StatusOK, s.inboxes.Snapshots())
}

type inboxRequest struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

func (s *Server) handleAddInbox(c echo.Context) error {
	var req inboxRequest
	if err := c.Bind(&req); err != nil || req.Src == "" || req.Dst == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "src and dst required"})
	}

	snap, err := s.inboxes.Start(req.Src, req.Dst)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, snap)
}

func (s *Server) handleRemoveInbox(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	if err := s.inboxes.Stop(uint(id)); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}
