package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterProjectRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	TeamName     string `json:"team_name"`
	Category     string `json:"category"`
	LiveURL      string `json:"live_url,omitempty"`
	DemoURL      string `json:"demo_url,omitempty"`
	SourceURL    string `json:"source_url,omitempty"`
	PayoutTarget string `json:"payout_target"`
}

type RegisterProjectBatchRequest struct {
	Titles        []string `json:"titles"`
	Descriptions  []string `json:"descriptions"`
	TeamNames     []string `json:"team_names"`
	Categories    []string `json:"categories"`
	LiveURLs      []string `json:"live_urls"`
	DemoURLs      []string `json:"demo_urls"`
	SourceURLs    []string `json:"source_urls"`
	PayoutTargets []string `json:"payout_targets"`
}

type ProjectResponse struct {
	ProjectID    uint64 `json:"project_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	TeamName     string `json:"team_name"`
	Category     string `json:"category"`
	LiveURL      string `json:"live_url,omitempty"`
	DemoURL      string `json:"demo_url,omitempty"`
	SourceURL    string `json:"source_url,omitempty"`
	PayoutTarget string `json:"payout_target"`
	VoteCount    uint64 `json:"vote_count"`
}

type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
}

type CastVoteRequest struct {
	ProjectID uint64 `json:"project_id"`
}

type CastVoteResponse struct {
	ProjectID    uint64   `json:"project_id"`
	ProjectVotes uint64   `json:"project_votes"`
	VoterHistory []uint64 `json:"voter_history"`
	FirstVote    bool     `json:"first_vote"`
}

type MyVotesResponse struct {
	ProjectIDs []uint64 `json:"project_ids"`
}

type TotalVotesResponse struct {
	TotalVotes uint64 `json:"total_votes"`
}

type VotingDataResponse struct {
	Projects    []ProjectResponse `json:"projects"`
	TotalVotes  uint64            `json:"total_votes"`
	TotalVoters uint64            `json:"total_voters"`
	ViewerVotes []uint64          `json:"viewer_votes"`
	Resolved    bool              `json:"resolved"`
	WinnerID    uint64            `json:"winner_id"`
}

type RankedProjectItem struct {
	ProjectID uint64 `json:"project_id"`
	Title     string `json:"title"`
	VoteCount uint64 `json:"vote_count"`
	Rank      int    `json:"rank"`
}

type PayoutItem struct {
	ProjectID uint64 `json:"project_id"`
	Target    string `json:"target"`
	Amount    int64  `json:"amount"`
	Delivered bool   `json:"delivered"`
}

type ResolveVotingResponse struct {
	WinnerID    uint64              `json:"winner_id"`
	WinnerTitle string              `json:"winner_title"`
	WinnerVotes uint64              `json:"winner_votes"`
	Ranked      []RankedProjectItem `json:"ranked"`
	Payouts     []PayoutItem        `json:"payouts,omitempty"`
}

type ResolutionStatusResponse struct {
	Resolved bool   `json:"resolved"`
	WinnerID uint64 `json:"winner_id"`
}
