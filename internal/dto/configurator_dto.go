package dto

import "agency-configurator-be/pkg/recommendation"

type CalculatePriceRequest struct {
	SelectedOptionIds []string `json:"selectedOptionIds" validate:"unique,max=200,dive,required"`
}

type PriceLineResponse struct {
	OptionId  string  `json:"optionId"`
	Name      string  `json:"name"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	OnRequest bool    `json:"onRequest"`
}

type CalculatePriceResponse struct {
	TotalMin        float64              `json:"totalMin"`
	TotalMax        float64              `json:"totalMax"`
	TotalMinTtc     float64              `json:"totalMinTtc"`
	TotalMaxTtc     float64              `json:"totalMaxTtc"`
	AutomationCount int                  `json:"automationCount"`
	AutomationIds   []string             `json:"automationIds"`
	UnknownIds      []string             `json:"unknownIds"`
	Lines           []*PriceLineResponse `json:"lines"`
}

type RecommendationRequest struct {
	Answers      recommendation.Answers `json:"answers" validate:"required"`
	SessionToken string                 `json:"sessionToken" validate:"omitempty,max=64"`
}

type RecommendationResponse struct {
	RecommendedOptionIds []string                      `json:"recommendedOptionIds"`
	SessionId            string                        `json:"sessionId"`
	AnsweredPairs        []recommendation.AnsweredPair `json:"answeredPairs"`
	Warnings             []recommendation.Warning      `json:"warnings"`
}
