package bel

import "slices"

// Namespaces are the identifier namespaces the BEL framework resources define.
var Namespaces = []string{
	"AFFX", "CHEBIID", "CHEBI", "DOID", "DO", "EGID",
	"GOBPID", "GOBP", "GOCCID", "GOCC", "HGNC", "MESHPP", "MESHCS",
	"MESHC", "MESHCID", "MESHD", "MESHPPID", "MESHCSID", "MESHDID",
	"MGI", "RGD", "SCHEM", "SDIS", "SFAM", "SCOMP", "SPID", "SP",
}

// DisallowedMarkers flag statements that reference namespaces the downstream
// tools cannot resolve.
var DisallowedMarkers = []string{"ENSEMBL", "EMBL"}

// KnownNamespace reports whether ns is a BEL framework namespace.
func KnownNamespace(ns string) bool {
	return slices.Contains(Namespaces, ns)
}
