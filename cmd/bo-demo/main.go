// Command bo-demo wires an in-memory Bayesian Optimization service and
// walks it through a single bean/machine lifecycle: initialize, ingest a
// handful of rated runs, then print a suggestion and a prediction curve.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Linskii/coffee-tracker/bo"
	"github.com/Linskii/coffee-tracker/store"
)

type demoSchemas struct {
	schema bo.MachineSchema
}

func (d demoSchemas) GetMachineSchema(_ context.Context, machineID string) (*bo.MachineSchema, error) {
	if machineID != d.schema.ID {
		return nil, nil
	}
	return &d.schema, nil
}

type demoRuns struct{}

func (demoRuns) GetRuns(context.Context, string, string) ([]bo.Run, error) {
	return nil, nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "bo-demo: building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	schema := bo.MachineSchema{
		ID: "espresso-v1",
		Parameters: []bo.ParameterSchema{
			{ID: "grindSize", Name: "Grind size", Kind: bo.KindBoundedContinuous,
				Bounded: bo.BoundedConfig{Min: 0, Max: 10, Step: 0.5}},
			{ID: "brewTemp", Name: "Brew temperature", Kind: bo.KindUnboundedContinuous},
			{ID: "roastLevel", Name: "Roast level", Kind: bo.KindOrdinal,
				Ordinal: bo.OrdinalConfig{Options: []string{"Light", "Medium", "Dark"}}},
		},
	}

	svc := bo.NewService(
		store.NewMemoryStore(),
		demoSchemas{schema: schema},
		demoRuns{},
		rand.New(rand.NewSource(time.Now().UnixNano())),
		logger,
	)

	ctx := context.Background()
	const beanID, machineID = "ethiopia-yirgacheffe", "espresso-v1"

	if err := svc.InitializeOptimizer(ctx, beanID, machineID); err != nil {
		logger.Fatal("initialize optimizer", zap.Error(err))
	}

	runs := []bo.Run{
		{ParameterValues: map[string]bo.ParamValue{
			"grindSize": bo.NewBoundedValue(3), "brewTemp": bo.NewUnboundedValue(92), "roastLevel": bo.NewOrdinalValue("Medium"),
		}, Rating: 6},
		{ParameterValues: map[string]bo.ParamValue{
			"grindSize": bo.NewBoundedValue(5), "brewTemp": bo.NewUnboundedValue(94), "roastLevel": bo.NewOrdinalValue("Light"),
		}, Rating: 8},
		{ParameterValues: map[string]bo.ParamValue{
			"grindSize": bo.NewBoundedValue(7), "brewTemp": bo.NewUnboundedValue(96), "roastLevel": bo.NewOrdinalValue("Dark"),
		}, Rating: 5},
	}
	for _, run := range runs {
		run.MachineID, run.BeanID = machineID, beanID
		if err := svc.UpdateWithRun(ctx, beanID, machineID, run); err != nil {
			logger.Warn("update with run", zap.Error(err))
		}
	}

	fmt.Println("observations:", svc.GetObservationCount(ctx, beanID, machineID))
	fmt.Println("ready:", svc.IsReady(ctx, beanID, machineID))

	if suggestion := svc.SuggestParameters(ctx, beanID, machineID); suggestion != nil {
		fmt.Printf("suggestion: %+v (expected rating %.2f ± %.2f)\n",
			suggestion.ParameterValues, suggestion.ExpectedRating, suggestion.ExpectedStdDev)
	} else {
		fmt.Println("no suggestion available")
	}

	curve := svc.GetPredictionCurve(ctx, beanID, machineID, bo.CurveOptions{ParamID: "grindSize", NumPoints: 11})
	if curve != nil {
		fmt.Println("prediction curve for grindSize:")
		for i := range curve.X {
			fmt.Printf("  grindSize=%.2f mean=%.2f [%.2f, %.2f]\n",
				curve.X[i], curve.Mean[i], curve.LowerBound[i], curve.UpperBound[i])
		}
	}
}
