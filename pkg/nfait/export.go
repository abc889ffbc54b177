package nfait

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/erwanM974/graph-process-manager-loggers/internal/presentation/graph"
)

func (l *Logger[C, N, S, L]) export(ctx context.Context, aut *Automaton[L]) error {
	doc := aut.Document(l.format)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal automaton: %w", err)
	}
	if err := l.sink.Write(ctx, l.name+".json", data); err != nil {
		return err
	}

	if l.mermaid {
		overlay := &graph.AutomatonOverlay{
			Accessible:   aut.Accessible().Sorted(),
			CoAccessible: aut.CoAccessible().Sorted(),
		}
		diagram := graph.GenerateAutomatonMermaid(toView(doc), overlay)
		if err := l.sink.Write(ctx, l.name+".mmd", []byte(diagram)); err != nil {
			return err
		}
	}
	return nil
}

func toView(doc Document) graph.AutomatonView {
	view := graph.AutomatonView{
		NumStates: len(doc.Transitions),
		Initials:  doc.Initials,
		Finals:    doc.Finals,
	}
	for orig, row := range doc.Transitions {
		for _, letter := range doc.Alphabet {
			for _, targ := range row[letter] {
				view.Edges = append(view.Edges, graph.AutomatonEdge{From: orig, To: targ, Label: letter})
			}
		}
		for _, targ := range doc.Epsilon[orig] {
			view.Edges = append(view.Edges, graph.AutomatonEdge{From: orig, To: targ, Epsilon: true})
		}
	}
	return view
}
