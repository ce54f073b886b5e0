// Package pipeline orchestrates flagging across a whole table.
package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"radflag/internal/cache"
	"radflag/internal/compose"
	"radflag/internal/dataset"
	"radflag/internal/extract"
	"radflag/internal/model"
	"radflag/internal/vocab"
	"radflag/internal/worker"
)

// Pipeline applies the flag composer to every row of a table and
// attaches the derived integer columns.
type Pipeline struct {
	composer *compose.Composer
	memo     cache.Cache // nil disables memoization
	workers  int
}

// New creates a pipeline over the given vocabulary.
func New(v *vocab.Vocabulary, cfg *model.Config) *Pipeline {
	p := &Pipeline{
		composer: compose.New(v),
		workers:  cfg.Concurrency.Workers,
	}
	if cfg.Cache.Enabled {
		// Source exports repeat the same raw strings heavily, so a flat
		// per-value memo pays for itself on the first duplicate.
		p.memo = cache.NewMemory(0)
	}
	return p
}

// Flags composes all three field flags for one record.
func (p *Pipeline) Flags(rec model.RawRecord) model.FlagRecord {
	return model.FlagRecord{
		Exam:     p.composeCached(vocab.FieldExam, rec.Exam),
		Organ:    p.composeCached(vocab.FieldOrgan, rec.Organ),
		Contrast: p.composeCached(vocab.FieldContrast, rec.Contrast),
	}
}

func (p *Pipeline) composeCached(field vocab.Field, raw string) uint64 {
	if p.memo == nil {
		return p.composer.Compose(field, raw)
	}

	key := cache.Key(p.composer.Vocabulary().Fingerprint(), string(field), raw)
	if val, found := p.memo.Get(key); found {
		if flag, err := strconv.ParseUint(string(val), 10, 64); err == nil {
			return flag
		}
	}
	flag := p.composer.Compose(field, raw)
	_ = p.memo.Set(key, []byte(strconv.FormatUint(flag, 10)), 0)
	return flag
}

// Process attaches "<column>_flags" integer columns for the three
// named free-text columns. The schema is checked up front: a missing
// column aborts the whole batch before any row is touched, keeping the
// output shape consistent. Past that check no row can fail; unmatched
// text lands as flag 0.
func (p *Pipeline) Process(ctx context.Context, t *dataset.Table, examCol, organCol, contrastCol string) error {
	for _, col := range []string{examCol, organCol, contrastCol} {
		if !t.HasColumn(col) {
			return fmt.Errorf("%w: %q", dataset.ErrMissingColumn, col)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	n := t.Len()
	flags := make([]model.FlagRecord, n)

	// Rows are independent and the vocabulary immutable, so shards own
	// disjoint slices of the output and run without locking.
	pool := worker.NewPool(p.workers)
	defer pool.Shutdown()
	pool.Start()
	for _, shard := range worker.Shards(n, p.workers) {
		pool.Submit(&shardJob{
			ctx:         ctx,
			pipeline:    p,
			table:       t,
			examCol:     examCol,
			organCol:    organCol,
			contrastCol: contrastCol,
			rows:        shard,
			out:         flags,
		})
	}
	if failed := pool.Wait(); len(failed) > 0 {
		return failed[0]
	}

	exam := make([]string, n)
	organ := make([]string, n)
	contrast := make([]string, n)
	for i, f := range flags {
		exam[i] = strconv.FormatUint(f.Exam, 10)
		organ[i] = strconv.FormatUint(f.Organ, 10)
		contrast[i] = strconv.FormatUint(f.Contrast, 10)
	}

	if err := t.AddColumn(examCol+"_flags", exam); err != nil {
		return err
	}
	if err := t.AddColumn(organCol+"_flags", organ); err != nil {
		return err
	}
	return t.AddColumn(contrastCol+"_flags", contrast)
}

type shardJob struct {
	ctx         context.Context
	pipeline    *Pipeline
	table       *dataset.Table
	examCol     string
	organCol    string
	contrastCol string
	rows        worker.Range
	out         []model.FlagRecord
}

func (j *shardJob) Execute(context.Context) error {
	if err := j.ctx.Err(); err != nil {
		return err
	}
	for i := j.rows.Start; i < j.rows.End; i++ {
		rec, err := j.record(i)
		if err != nil {
			return err
		}
		j.out[i] = j.pipeline.Flags(rec)
	}
	return nil
}

func (j *shardJob) record(i int) (model.RawRecord, error) {
	exam, err := j.table.Cell(i, j.examCol)
	if err != nil {
		return model.RawRecord{}, err
	}
	organ, err := j.table.Cell(i, j.organCol)
	if err != nil {
		return model.RawRecord{}, err
	}
	contrast, err := j.table.Cell(i, j.contrastCol)
	if err != nil {
		return model.RawRecord{}, err
	}
	return model.RawRecord{Exam: exam, Organ: organ, Contrast: contrast}, nil
}

// PrepareReferrals reduces a narrative column into the three raw field
// columns ("<column>_exam", "<column>_organ", "<column>_contrast") the
// flagging step consumes. Unparseable narratives yield empty parts and
// later degrade to flag 0.
func (p *Pipeline) PrepareReferrals(t *dataset.Table, column string) error {
	if !t.HasColumn(column) {
		return fmt.Errorf("%w: %q", dataset.ErrMissingColumn, column)
	}

	n := t.Len()
	exam := make([]string, n)
	organ := make([]string, n)
	contrast := make([]string, n)
	for i := 0; i < n; i++ {
		text, err := t.Cell(i, column)
		if err != nil {
			return err
		}
		ref := extract.ParseReferral(extract.CleanRecommendation(text))
		exam[i] = ref.Exam
		organ[i] = ref.BodyPart
		contrast[i] = ref.Contrast
	}

	if err := t.AddColumn(column+"_exam", exam); err != nil {
		return err
	}
	if err := t.AddColumn(column+"_organ", organ); err != nil {
		return err
	}
	return t.AddColumn(column+"_contrast", contrast)
}
