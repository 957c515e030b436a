package web

import "net/http"

const flashSession = "libris-flash"

// addFlash queues a one-shot message for the next rendered page.
func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := s.flash.Get(r, flashSession)
	sess.AddFlash(msg)
	_ = sess.Save(r, w)
}

// takeFlashes drains and returns the queued messages.
func (s *Server) takeFlashes(w http.ResponseWriter, r *http.Request) []string {
	sess, _ := s.flash.Get(r, flashSession)
	raw := sess.Flashes()
	_ = sess.Save(r, w)

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
