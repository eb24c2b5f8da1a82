package httpadapter

import (
	"context"
	"log/slog"

	"demoday/contexts/hackathon/voting-service/application/commands"
	"demoday/contexts/hackathon/voting-service/application/queries"
	"demoday/contexts/hackathon/voting-service/domain/entities"
	httptransport "demoday/contexts/hackathon/voting-service/transport/http"
)

type Handler struct {
	Registry   commands.RegisterUseCase
	Votes      commands.VoteUseCase
	Resolution commands.ResolveUseCase
	Projects   queries.ProjectUseCase
	VoteReads  queries.VoteUseCase
	VotingData queries.VotingDataUseCase
	Logger     *slog.Logger
}

func (h Handler) RegisterProjectHandler(
	ctx context.Context,
	callerID string,
	req httptransport.RegisterProjectRequest,
) (httptransport.ProjectResponse, error) {
	project, err := h.Registry.RegisterProject(ctx, commands.RegisterProjectCommand{
		CallerID: callerID,
		Fields: commands.ProjectFields{
			Title:        req.Title,
			Description:  req.Description,
			TeamName:     req.TeamName,
			Category:     req.Category,
			LiveURL:      req.LiveURL,
			DemoURL:      req.DemoURL,
			SourceURL:    req.SourceURL,
			PayoutTarget: req.PayoutTarget,
		},
	})
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	return mapProject(project), nil
}

func (h Handler) RegisterProjectBatchHandler(
	ctx context.Context,
	callerID string,
	req httptransport.RegisterProjectBatchRequest,
) (httptransport.ProjectListResponse, error) {
	projects, err := h.Registry.RegisterProjectBatch(ctx, commands.RegisterProjectBatchCommand{
		CallerID:      callerID,
		Titles:        req.Titles,
		Descriptions:  req.Descriptions,
		TeamNames:     req.TeamNames,
		Categories:    req.Categories,
		LiveURLs:      req.LiveURLs,
		DemoURLs:      req.DemoURLs,
		SourceURLs:    req.SourceURLs,
		PayoutTargets: req.PayoutTargets,
	})
	if err != nil {
		return httptransport.ProjectListResponse{}, err
	}
	return httptransport.ProjectListResponse{Items: mapProjects(projects)}, nil
}

func (h Handler) GetProjectHandler(ctx context.Context, projectID uint64) (httptransport.ProjectResponse, error) {
	project, err := h.Projects.GetProject(ctx, projectID)
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	return mapProject(project), nil
}

func (h Handler) ListProjectsHandler(ctx context.Context) (httptransport.ProjectListResponse, error) {
	projects, err := h.Projects.ListProjects(ctx)
	if err != nil {
		return httptransport.ProjectListResponse{}, err
	}
	return httptransport.ProjectListResponse{Items: mapProjects(projects)}, nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	voterID string,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	result, err := h.Votes.CastVote(ctx, commands.CastVoteCommand{
		VoterID:   voterID,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		ProjectID:    result.ProjectID,
		ProjectVotes: result.ProjectVotes,
		VoterHistory: result.VoterHistory,
		FirstVote:    result.FirstVoteForVoter,
	}, nil
}

func (h Handler) MyVotesHandler(ctx context.Context, voterID string) (httptransport.MyVotesResponse, error) {
	history, err := h.VoteReads.MyVotes(ctx, voterID)
	if err != nil {
		return httptransport.MyVotesResponse{}, err
	}
	return httptransport.MyVotesResponse{ProjectIDs: history}, nil
}

func (h Handler) TotalVotesHandler(ctx context.Context) (httptransport.TotalVotesResponse, error) {
	total, err := h.VoteReads.TotalVotes(ctx)
	if err != nil {
		return httptransport.TotalVotesResponse{}, err
	}
	return httptransport.TotalVotesResponse{TotalVotes: total}, nil
}

func (h Handler) VotingDataHandler(ctx context.Context, viewerID string) (httptransport.VotingDataResponse, error) {
	snapshot, err := h.VotingData.VotingData(ctx, viewerID)
	if err != nil {
		return httptransport.VotingDataResponse{}, err
	}
	return httptransport.VotingDataResponse{
		Projects:    mapProjects(snapshot.Projects),
		TotalVotes:  snapshot.TotalVotes,
		TotalVoters: snapshot.TotalVoters,
		ViewerVotes: snapshot.ViewerVotes,
		Resolved:    snapshot.Resolved,
		WinnerID:    snapshot.WinnerID,
	}, nil
}

func (h Handler) ResolveVotingHandler(ctx context.Context, callerID string) (httptransport.ResolveVotingResponse, error) {
	result, err := h.Resolution.ResolveVoting(ctx, commands.ResolveVotingCommand{CallerID: callerID})
	if err != nil {
		return httptransport.ResolveVotingResponse{}, err
	}
	resp := httptransport.ResolveVotingResponse{
		WinnerID:    result.WinnerID,
		WinnerTitle: result.WinnerTitle,
		WinnerVotes: result.WinnerVotes,
		Ranked:      make([]httptransport.RankedProjectItem, 0, len(result.Ranked)),
		Payouts:     make([]httptransport.PayoutItem, 0, len(result.Payouts)),
	}
	for i, slot := range result.Ranked {
		resp.Ranked = append(resp.Ranked, httptransport.RankedProjectItem{
			ProjectID: slot.ProjectID,
			Title:     slot.Title,
			VoteCount: slot.VoteCount,
			Rank:      i + 1,
		})
	}
	for _, payout := range result.Payouts {
		resp.Payouts = append(resp.Payouts, httptransport.PayoutItem{
			ProjectID: payout.ProjectID,
			Target:    payout.Target,
			Amount:    payout.Amount,
			Delivered: payout.Delivered,
		})
	}
	return resp, nil
}

func (h Handler) ResolutionStatusHandler(ctx context.Context) (httptransport.ResolutionStatusResponse, error) {
	snapshot, err := h.VotingData.VotingData(ctx, "")
	if err != nil {
		return httptransport.ResolutionStatusResponse{}, err
	}
	return httptransport.ResolutionStatusResponse{
		Resolved: snapshot.Resolved,
		WinnerID: snapshot.WinnerID,
	}, nil
}

func mapProject(project entities.Project) httptransport.ProjectResponse {
	return httptransport.ProjectResponse{
		ProjectID:    project.ID,
		Title:        project.Title,
		Description:  project.Description,
		TeamName:     project.TeamName,
		Category:     project.Category,
		LiveURL:      project.LiveURL,
		DemoURL:      project.DemoURL,
		SourceURL:    project.SourceURL,
		PayoutTarget: project.PayoutTarget,
		VoteCount:    project.VoteCount,
	}
}

func mapProjects(projects []entities.Project) []httptransport.ProjectResponse {
	items := make([]httptransport.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		items = append(items, mapProject(project))
	}
	return items
}
