package config

import (
	"log"
	"time"

	"gorm.io/datatypes"
	"malgeunsoft.com/launchpad/models"
)

// RunAllSeeding loads demo data for local development: a product
// catalog, resource library entries and a handful of quotes covering
// every workflow state. Enabled with SEED_DEMO_DATA=true.
func RunAllSeeding() error {
	log.Println("=== Starting Database Seeding ===")

	log.Println("[1/3] Seeding Products...")
	if err := SeedProducts(); err != nil {
		return err
	}

	log.Println("[2/3] Seeding Resources...")
	if err := SeedResources(); err != nil {
		return err
	}

	log.Println("[3/3] Seeding Demo Quotes...")
	if err := SeedDemoQuotes(); err != nil {
		return err
	}

	log.Println("=== Database Seeding Complete ===")
	return nil
}

// SeedProducts creates the initial product catalog if empty
func SeedProducts() error {
	var count int64
	if err := DB.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Products already seeded, skipping")
		return nil
	}

	products := []models.Product{
		{
			Name:         "학원 관리 시스템",
			Description:  "학원 운영에 필요한 모든 기능을 통합 관리하는 종합 솔루션입니다. 학생 관리, 수강 관리, 결제 관리, 출석 관리 등 학원 운영의 전 과정을 효율적으로 관리할 수 있습니다.",
			ProposalFile: "학원관리시스템_제안서.pdf",
			BasicAreas:   datatypes.JSON(`[{"buttonName":"제안서","url":"https://www.malgnsoft.com/products/academy"},{"buttonName":"요금 안내","url":"https://www.malgnsoft.com/products/academy/pricing"}]`),
			DemoAreas:    datatypes.JSON(`[{"buttonName":"데모 체험","url":"https://demo.malgnsoft.com/academy","id":"demo01","password":"demo1234"}]`),
			CaseAreas:    datatypes.JSON(`[{"customerName":"서울대학교 평생교육원","url":"https://www.malgnsoft.com/cases/seoul-university"},{"customerName":"강남 어학원","url":"https://www.malgnsoft.com/cases/gangnam-language"}]`),
			DisplayOrder: 1,
			IsActive:     true,
		},
		{
			Name:         "온라인 교육 플랫폼",
			Description:  "언제 어디서나 학습할 수 있는 온라인 교육 플랫폼입니다. 실시간 화상 강의, 동영상 강의, 과제 관리, 학습 진도 추적 등 다양한 기능을 제공합니다.",
			ProposalFile: "온라인교육플랫폼_제안서.pdf",
			BasicAreas:   datatypes.JSON(`[{"buttonName":"제안서","url":"https://www.malgnsoft.com/products/online-education"},{"buttonName":"요금 안내","url":"https://www.malgnsoft.com/products/online-education/pricing"}]`),
			DemoAreas:    datatypes.JSON(`[{"buttonName":"데모 체험","url":"https://demo.malgnsoft.com/online-edu","id":"demo02","password":"demo1234"}]`),
			CaseAreas:    datatypes.JSON(`[{"customerName":"K대학교 원격교육원","url":"https://www.malgnsoft.com/cases/k-university"}]`),
			DisplayOrder: 2,
			IsActive:     true,
		},
		{
			Name:         "기업 교육 솔루션",
			Description:  "기업 내부 직원 교육 및 역량 강화를 위한 맞춤형 교육 솔루션입니다.",
			ProposalFile: "기업교육솔루션_제안서.pdf",
			BasicAreas:   datatypes.JSON(`[{"buttonName":"제안서","url":"https://www.malgnsoft.com/products/corporate-education"},{"buttonName":"요금 안내","url":"https://www.malgnsoft.com/products/corporate-education/pricing"}]`),
			DemoAreas:    datatypes.JSON(`[{"buttonName":"데모 체험","url":"https://demo.malgnsoft.com/corporate","id":"demo03","password":"demo1234"}]`),
			CaseAreas:    datatypes.JSON(`[{"customerName":"삼성전자","url":"https://www.malgnsoft.com/cases/samsung"},{"customerName":"LG전자","url":"https://www.malgnsoft.com/cases/lg"}]`),
			DisplayOrder: 3,
			IsActive:     true,
		},
		{
			Name:         "학습 관리 시스템(LMS)",
			Description:  "학습자의 학습 과정을 체계적으로 관리하고 추적할 수 있는 학습 관리 시스템입니다.",
			ProposalFile: "LMS_제안서.pdf",
			BasicAreas:   datatypes.JSON(`[{"buttonName":"제안서","url":"https://www.malgnsoft.com/products/lms"},{"buttonName":"요금 안내","url":"https://www.malgnsoft.com/products/lms/pricing"}]`),
			DemoAreas:    datatypes.JSON(`[{"buttonName":"데모 체험","url":"https://demo.malgnsoft.com/lms","id":"demo04","password":"demo1234"}]`),
			CaseAreas:    datatypes.JSON(`[{"customerName":"국립대학교","url":"https://www.malgnsoft.com/cases/national-university"}]`),
			DisplayOrder: 4,
			IsActive:     true,
		},
		{
			Name:         "평가 및 시험 시스템",
			Description:  "온라인 시험 및 평가를 위한 종합 솔루션입니다. 다양한 유형의 시험을 온라인으로 진행하고 자동 채점할 수 있습니다.",
			ProposalFile: "평가시험시스템_제안서.pdf",
			BasicAreas:   datatypes.JSON(`[{"buttonName":"제안서","url":"https://www.malgnsoft.com/products/exam"},{"buttonName":"요금 안내","url":"https://www.malgnsoft.com/products/exam/pricing"}]`),
			DemoAreas:    datatypes.JSON(`[{"buttonName":"데모 체험","url":"https://demo.malgnsoft.com/exam","id":"demo05","password":"demo1234"}]`),
			CaseAreas:    datatypes.JSON(`[{"customerName":"공무원 시험원","url":"https://www.malgnsoft.com/cases/public-exam"}]`),
			DisplayOrder: 5,
			IsActive:     true,
		},
	}

	if err := DB.Create(&products).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded %d products", len(products))
	return nil
}

// SeedResources creates one placeholder entry per library category
func SeedResources() error {
	var count int64
	if err := DB.Model(&models.Resource{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Resources already seeded, skipping")
		return nil
	}

	var resources []models.Resource
	for _, category := range models.ResourceCategories {
		resources = append(resources, models.Resource{
			Name:        category + " 안내",
			Description: category + " 카테고리의 기본 자료입니다.",
			Category:    category,
			CreatedBy:   "seed",
		})
	}

	if err := DB.Create(&resources).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded %d resources", len(resources))
	return nil
}

// SeedDemoQuotes creates sample quotes spanning the workflow states
func SeedDemoQuotes() error {
	var count int64
	if err := DB.Model(&models.Quote{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Quotes already seeded, skipping")
		return nil
	}

	quotes := []models.Quote{
		demoQuote("㈜테크솔루션 견적서", "2025-01-15", models.CustomerInfo{
			CompanyName: "㈜테크솔루션", ContactName: "김담당", Position: "대표이사",
			Phone: "010-1234-5678", Email: "contact@techsolution.com",
		}, "REF-2025-001", "학원/학교", "범용 LMS", 10, models.ItemList{
			{Category: "기본", Detail: "기본 라이선스", Period: "12", Quantity: 10, Price: 100000, Amount: 1000000},
			{Category: "추가", Detail: "추가 모듈", Period: "12", Quantity: 5, Price: 50000, Amount: 250000, Note: "옵션"},
		}, models.StatusReceived, map[string]string{
			models.StatusReceived: "2025-01-15T00:00:00.000Z",
		}),
		demoQuote("㈜디지털교육 견적서", "2025-02-20", models.CustomerInfo{
			CompanyName: "㈜디지털교육", ContactName: "이담당", Position: "대표이사",
			Phone: "010-2345-6789", Email: "contact@digitaledu.com",
		}, "REF-2025-002", "공공기관 사용", "공공 LMS", 20, models.ItemList{
			{Category: "기본", Detail: "기본 라이선스", Period: "12", Quantity: 20, Price: 100000, Amount: 2000000},
			{Category: "서비스", Detail: "유지보수", Period: "12", Quantity: 1, Price: 200000, Amount: 200000, Note: "연간"},
		}, models.StatusSent, map[string]string{
			models.StatusReceived: "2025-02-20T00:00:00.000Z",
			models.StatusSent:     "2025-02-25T00:00:00.000Z",
		}),
		demoQuote("㈜스마트에듀 견적서", "2025-03-10", models.CustomerInfo{
			CompanyName: "㈜스마트에듀", ContactName: "박담당", Position: "대표이사",
			Phone: "010-3456-7890", Email: "contact@smartedu.com",
		}, "REF-2025-003", "내일배움카드", "환급 LMS", 15, models.ItemList{
			{Category: "기본", Detail: "기본 라이선스", Period: "12", Quantity: 15, Price: 100000, Amount: 1500000},
			{Category: "추가", Detail: "추가 모듈", Period: "12", Quantity: 3, Price: 50000, Amount: 150000, Note: "옵션"},
			{Category: "서비스", Detail: "유지보수", Period: "12", Quantity: 1, Price: 200000, Amount: 200000, Note: "연간"},
		}, models.StatusNegotiating, map[string]string{
			models.StatusReceived:    "2025-03-10T00:00:00.000Z",
			models.StatusSent:        "2025-03-15T00:00:00.000Z",
			models.StatusNegotiating: "2025-03-20T00:00:00.000Z",
		}),
		demoQuote("㈜에듀테크 견적서", "2025-04-05", models.CustomerInfo{
			CompanyName: "㈜에듀테크", ContactName: "최담당", Position: "대표이사",
			Phone: "010-4567-8901", Email: "contact@edutech.com",
		}, "REF-2025-004", "개인 사업자", "위캔디오", 30, models.ItemList{
			{Category: "기본", Detail: "기본 라이선스", Period: "12", Quantity: 30, Price: 100000, Amount: 3000000},
			{Category: "서비스", Detail: "유지보수", Period: "12", Quantity: 1, Price: 300000, Amount: 300000, Note: "연간"},
		}, models.StatusCompleted, map[string]string{
			models.StatusReceived:    "2025-04-05T00:00:00.000Z",
			models.StatusSent:        "2025-04-10T00:00:00.000Z",
			models.StatusNegotiating: "2025-04-15T00:00:00.000Z",
			models.StatusConfirmed:   "2025-04-20T00:00:00.000Z",
			models.StatusCompleted:   "2025-04-25T00:00:00.000Z",
		}),
	}

	if err := DB.Create(&quotes).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded %d demo quotes", len(quotes))
	return nil
}

func demoQuote(title, date string, customer models.CustomerInfo, reference, purpose, product string, licenses int, items models.ItemList, status string, history map[string]string) models.Quote {
	quoteDate, _ := time.Parse("2006-01-02", date)
	q := models.Quote{
		QuoteTitle:      title,
		QuoteDate:       models.JSONTime(quoteDate),
		Recipient:       customer.CompanyName,
		Reference:       reference,
		Customer:        customer,
		Purpose:         purpose,
		Items:           items,
		PaymentInfo:     "계좌이체",
		DepositInfo:     "계약금 30%",
		ManagerName:     "홍길동",
		ManagerPosition: "팀장",
		ManagerPhone:    "010-1234-5678",
		ManagerEmail:    "sales1@malgeunsoft.com",
		Validity:        "30일",
		Product:         product,
		LicenseCount:    licenses,
		Status:          status,
		StatusHistory:   models.StatusHistory(history),
		CreatedBy:       "seed",
	}
	q.RecomputeTotal()
	return q
}
