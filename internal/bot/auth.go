package bot

// unauthorizedMessage is shown to users outside the allow-list.
const unauthorizedMessage = "Sorry, this bot is private. You are not authorized to use it."

// Gate implements the user allow-list. An empty list admits everyone, which
// is the default for personal deployments.
type Gate struct {
	allowed map[int64]struct{}
}

func NewGate(allowedIDs []int64) *Gate {
	g := &Gate{}
	if len(allowedIDs) > 0 {
		g.allowed = make(map[int64]struct{}, len(allowedIDs))
		for _, id := range allowedIDs {
			g.allowed[id] = struct{}{}
		}
	}
	return g
}

func (g *Gate) Allowed(userID int64) bool {
	if g.allowed == nil {
		return true
	}
	_, ok := g.allowed[userID]
	return ok
}
