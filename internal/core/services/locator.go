package services

import (
	"fmt"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/logger"
)

// MaxSearchSteps caps the number of nodes the fallback search dequeues.
const MaxSearchSteps = 10000

// Locate finds the question list inside the blob.
//
// The fast path checks the known fixed offset root[1][1]. When that does
// not match, a breadth-first search looks for the shallowest sequence
// whose every element looks like a question record, dequeuing at most
// MaxSearchSteps nodes. Failure returns domain.ErrStructureNotFound and
// never a partial list.
func Locate(root domain.Node) (domain.LocateResult, error) {
	return locate(root, MaxSearchSteps)
}

func locate(root domain.Node, maxSteps int) (domain.LocateResult, error) {
	if questions, ok := fastPath(root); ok {
		logger.Debug("Question list found at fixed offset (%d records)", len(questions))
		return domain.LocateResult{
			Questions: questions,
			Strategy:  domain.StrategyFastPath,
		}, nil
	}

	logger.Debug("Fixed offset did not match, searching structure")
	questions, steps, ok := search(root, maxSteps)
	if !ok {
		logger.Warn("Structure search gave up after %d steps", steps)
		return domain.LocateResult{Steps: steps},
			fmt.Errorf("%w: searched %d nodes", domain.ErrStructureNotFound, steps)
	}

	logger.Debug("Question list found by search after %d steps (%d records)", steps, len(questions))
	return domain.LocateResult{
		Questions: questions,
		Strategy:  domain.StrategySearch,
		Steps:     steps,
	}, nil
}

// fastPath matches root[1][1] when it is a non-empty sequence whose first
// element is itself a sequence.
func fastPath(root domain.Node) ([]domain.Node, bool) {
	if !root.IsSequence() {
		return nil, false
	}
	outer := root.Index(1)
	if !outer.IsSequence() {
		return nil, false
	}
	list := outer.Index(1)
	if !list.IsSequence() || list.Len() == 0 || !list.Index(0).IsSequence() {
		return nil, false
	}
	return list.Children(), true
}

// search runs the bounded breadth-first fallback. It returns the number
// of dequeue operations performed.
func search(root domain.Node, maxSteps int) ([]domain.Node, int, bool) {
	queue := []domain.Node{root}
	steps := 0

	for len(queue) > 0 && steps < maxSteps {
		n := queue[0]
		queue[0] = domain.Node{}
		queue = queue[1:]
		steps++

		switch n.Kind() {
		case domain.KindSequence:
			if isQuestionList(n) {
				return n.Children(), steps, true
			}
			queue = append(queue, n.Children()...)
		case domain.KindObject:
			queue = append(queue, n.Children()...)
		}
	}

	return nil, steps, false
}

// isQuestionList reports whether n is a non-empty sequence of
// question-shaped records.
func isQuestionList(n domain.Node) bool {
	if n.Len() == 0 {
		return false
	}
	for i := range n.Len() {
		if !domain.LooksLikeQuestion(n.Index(i)) {
			return false
		}
	}
	return true
}
