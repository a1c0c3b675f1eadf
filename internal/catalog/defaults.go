package catalog

import "github.com/ppiankov/argcoder/internal/model"

// Default returns the built-in category catalog, used when no catalog
// file is configured. The set mirrors the production reference tables.
func Default() *Catalog {
	return &Catalog{
		Arguments: []model.ArgumentCategory{
			{Variable: model.VariableInflation, Name: "Demand Pressure", Description: "Aggregate demand outpacing productive capacity, pushing prices up."},
			{Variable: model.VariableInflation, Name: "Supply Conditions", Description: "Supply shocks, bottlenecks, or capacity changes affecting prices."},
			{Variable: model.VariableInflation, Name: "Inflation Expectations", Description: "How anchored or drifting expectations feed into price setting."},
			{Variable: model.VariableInflation, Name: "Wage and Cost Pass-Through", Description: "Labor cost or input cost growth passing into final prices."},
			{Variable: model.VariableInflation, Name: "Monetary Policy Stance", Description: "Current or anticipated policy settings as a driver of the price outlook."},
			{Variable: model.VariableInflation, Name: "Commodity and Import Prices", Description: "Energy, food, or imported goods price movements."},
			{Variable: model.VariableEmployment, Name: "Labor Market Tightness", Description: "Balance of labor demand and supply: vacancies, quits, hiring difficulty."},
			{Variable: model.VariableEmployment, Name: "Job Growth Momentum", Description: "Pace and breadth of payroll gains or losses."},
			{Variable: model.VariableEmployment, Name: "Labor Force Participation", Description: "Entry and exit of workers from the labor force."},
			{Variable: model.VariableEmployment, Name: "Structural and Sectoral Shifts", Description: "Reallocation, mismatch, or industry-specific employment changes."},
			{Variable: model.VariableEmployment, Name: "Aggregate Demand Effects", Description: "Overall activity driving hiring or layoffs."},
		},
		Data: []model.DataCategory{
			{Name: "Government Statistics", Description: "Official releases: CPI, payrolls, GDP, unemployment claims."},
			{Name: "Federal Reserve Analysis", Description: "Staff forecasts, Greenbook/Tealbook material, internal models."},
			{Name: "Business and District Contacts", Description: "Anecdotes from firms, banks, or regional contacts."},
			{Name: "Financial Market Data", Description: "Prices, yields, spreads, and market-implied expectations."},
			{Name: "Surveys", Description: "Household, firm, or professional-forecaster surveys."},
			{Name: "International Data", Description: "Foreign statistics and cross-border indicators."},
		},
	}
}
