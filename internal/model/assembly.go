// Package model defines the domain types shared across the resolution pipeline.
package model

import (
	"strings"
	"time"
)

// SourceDB identifies which NCBI catalog a record came from.
type SourceDB string

const (
	RefSeq  SourceDB = "REFSEQ"
	GenBank SourceDB = "GENBANK"
)

// Dir returns the directory name used in NCBI's FTP layout.
func (s SourceDB) Dir() string {
	return strings.ToLower(string(s))
}

// AssemblyLevel is the completeness tier of a genome assembly.
// Higher values indicate more complete assemblies.
type AssemblyLevel int

const (
	LevelUnknown AssemblyLevel = iota
	LevelContig
	LevelScaffold
	LevelChromosome
	LevelCompleteGenome
)

// ParseAssemblyLevel maps the assembly_level column value to an AssemblyLevel.
// Unrecognized values rank below Contig.
func ParseAssemblyLevel(s string) AssemblyLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "complete genome":
		return LevelCompleteGenome
	case "chromosome":
		return LevelChromosome
	case "scaffold":
		return LevelScaffold
	case "contig":
		return LevelContig
	default:
		return LevelUnknown
	}
}

// String returns the catalog spelling of the level.
func (l AssemblyLevel) String() string {
	switch l {
	case LevelCompleteGenome:
		return "Complete Genome"
	case LevelChromosome:
		return "Chromosome"
	case LevelScaffold:
		return "Scaffold"
	case LevelContig:
		return "Contig"
	default:
		return "-"
	}
}

// RefSeqCategory is NCBI's curation tier for an assembly.
// Higher values indicate stronger curation.
type RefSeqCategory int

const (
	CategoryNA RefSeqCategory = iota
	CategoryRepresentative
	CategoryReference
)

// ParseRefSeqCategory maps the refseq_category column value to a RefSeqCategory.
func ParseRefSeqCategory(s string) RefSeqCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reference genome":
		return CategoryReference
	case "representative genome":
		return CategoryRepresentative
	default:
		return CategoryNA
	}
}

// String returns the catalog spelling of the category.
func (c RefSeqCategory) String() string {
	switch c {
	case CategoryReference:
		return "reference genome"
	case CategoryRepresentative:
		return "representative genome"
	default:
		return "na"
	}
}

// AssemblyRecord is one row of an NCBI assembly summary catalog.
// Records are immutable once loaded; Accession is unique within one catalog.
type AssemblyRecord struct {
	OrganismName   string         `json:"organism_name"`
	Genus          string         `json:"genus"`
	SpeciesEpithet string         `json:"species_epithet"`
	Accession      string         `json:"assembly_accession"`
	Level          AssemblyLevel  `json:"assembly_level"`
	Category       RefSeqCategory `json:"refseq_category"`
	FTPPath        string         `json:"ftp_path"`
	Source         SourceDB       `json:"source_db"`
	SubmissionDate time.Time      `json:"submission_date"`
}
