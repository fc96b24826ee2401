package models

import (
	"time"
)

type FundingStatus string

const (
	FundingStatusAwaitingApproval FundingStatus = "AWAITING_APPROVAL"
	FundingStatusPending          FundingStatus = "PENDING"
	FundingStatusReconciled       FundingStatus = "RECONCILED"
)

type FundingAction string

const (
	FundingActionDeposit         FundingAction = "DEPOSIT"
	FundingActionDividendDeposit FundingAction = "DIVIDEND_DEPOSIT"
	FundingActionSettlement      FundingAction = "SETTLEMENT"
	FundingActionTransfer        FundingAction = "TRANSFER"
	FundingActionWithdrawal      FundingAction = "WITHDRAWAL"
	FundingActionAdjustment      FundingAction = "ADJUSTMENT"
)

type FundingSide string

const (
	FundingSideCredit FundingSide = "CREDIT"
	FundingSideDebit  FundingSide = "DEBIT"
)

// FundingFilter selects funding records. The US exchange uses the From/To
// window, the ASX exchange the status/action filters and paging.
type FundingFilter struct {
	From     time.Time
	To       time.Time
	Statuses []FundingStatus
	Actions  []FundingAction
	Sort     []Sort
	Limit    int
	Offset   int
}

// FundingRecord is a deposit, withdrawal or settlement event.
type FundingRecord struct {
	ID            string        `json:"id,omitempty"`
	UserID        string        `json:"userId,omitempty"`
	Reference     string        `json:"reference,omitempty"`
	Status        string        `json:"status,omitempty"`
	Action        FundingAction `json:"action,omitempty"`
	Side          FundingSide   `json:"side,omitempty"`
	Amount        NullFloat     `json:"amount"`
	Currency      Currency      `json:"currency,omitempty"`
	CustomerFee   NullFloat     `json:"customerFee"`
	ApprovedBy    string        `json:"approvedBy,omitempty"`
	InsertedAt    Timestamp     `json:"insertedAt"`
	UpdatedAt     Timestamp     `json:"updatedAt"`
	InsertDate    Timestamp     `json:"insertDate"`
	Channel       string        `json:"channel,omitempty"`
	Speed         string        `json:"speed,omitempty"`
	AmountFrom    NullFloat     `json:"amountFrom"`
	AmountTo      NullFloat     `json:"amountTo"`
	CurrencyFrom  string        `json:"currencyFrom,omitempty"`
	CurrencyTo    string        `json:"currencyTo,omitempty"`
	SpotRate      NullFloat     `json:"spotRate"`
	FxFee         NullFloat     `json:"fxFee"`
	ExpressFee    NullFloat     `json:"expressFee"`
	TotalFee      NullFloat     `json:"totalFee"`
	W8Fee         NullFloat     `json:"w8Fee"`
	IOF           string        `json:"iof,omitempty"`
	VET           string        `json:"vet,omitempty"`
	BSB           string        `json:"bsb,omitempty"`
	AccountNumber string        `json:"accountNumber,omitempty"`
}

// Fundings is a page of funding records.
type Fundings struct {
	Fundings []FundingRecord `json:"items"`
	Page
}

// FundsInFlight is a transfer that has been initiated but not yet settled.
type FundsInFlight struct {
	Type                   string `json:"type"`
	TransactionType        string `json:"transactionType"`
	InsertDateTime         string `json:"insertDateTime"`
	EstimatedArrivalTime   string `json:"estimatedArrivalTime"`
	EstimatedArrivalTimeUS string `json:"estimatedArrivalTimeUS"`
	ToAmount               Float  `json:"toAmount"`
	FromAmount             Float  `json:"fromAmount"`
}

type CashSettlement struct {
	UTCTime Timestamp `json:"utcTime"`
	Cash    Float     `json:"cash"`
}

// CashAvailable summarises the cash balances of the account.
type CashAvailable struct {
	CardHoldAmount                 NullFloat        `json:"cardHoldAmount"`
	CashAvailableForTrade          NullFloat        `json:"cashAvailableForTrade"`
	CashAvailableForWithdrawal     NullFloat        `json:"cashAvailableForWithdrawal"`
	CashAvailableForWithdrawalHold NullFloat        `json:"cashAvailableForWithdrawalHold"`
	CashAvailableForTransfer       NullFloat        `json:"cashAvailableForTransfer"`
	CashBalance                    NullFloat        `json:"cashBalance"`
	CashSettlement                 []CashSettlement `json:"cashSettlement,omitempty"`
	DWCashAvailableForWithdrawal   NullFloat        `json:"dwCashAvailableForWithdrawal"`
	PendingOrdersAmount            NullFloat        `json:"pendingOrdersAmount"`
	PendingPoliAmount              NullFloat        `json:"pendingPoliAmount"`
	PendingWithdrawals             NullFloat        `json:"pendingWithdrawals"`
	PendingBuys                    NullFloat        `json:"pendingBuys"`
	ReservedCash                   NullFloat        `json:"reservedCash"`
	BuyingPower                    NullFloat        `json:"buyingPower"`
	ClearingCash                   NullFloat        `json:"clearingCash"`
	SettledCash                    NullFloat        `json:"settledCash"`
	SettlementHold                 NullFloat        `json:"settlementHold"`
	TradeSettlement                NullFloat        `json:"tradeSettlement"`
}
